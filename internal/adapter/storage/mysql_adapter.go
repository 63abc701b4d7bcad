package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jerrymart/quickmart/internal/core/domain"
)

// MySQLJournal persists completed transactions for audit and reporting.
// Expected schema:
//
//	CREATE TABLE transactions (
//	    seq        INT PRIMARY KEY,
//	    is_member  BOOLEAN NOT NULL,
//	    subtotal   DECIMAL(10,2) NOT NULL,
//	    tax        DECIMAL(10,2) NOT NULL,
//	    total      DECIMAL(10,2) NOT NULL,
//	    cash       DECIMAL(10,2) NOT NULL,
//	    change_due DECIMAL(10,2) NOT NULL,
//	    tax_rate   DECIMAL(6,4)  NOT NULL,
//	    created_at DATETIME      NOT NULL
//	);
//	CREATE TABLE transaction_lines (
//	    seq        INT NOT NULL,
//	    item_name  VARCHAR(255)  NOT NULL,
//	    quantity   INT           NOT NULL,
//	    unit_price DECIMAL(10,2) NOT NULL,
//	    taxable    BOOLEAN       NOT NULL,
//	    line_total DECIMAL(10,2) NOT NULL,
//	    PRIMARY KEY (seq, item_name)
//	);
type MySQLJournal struct {
	db *sql.DB
}

func NewMySQLJournal(db *sql.DB) *MySQLJournal {
	return &MySQLJournal{db: db}
}

func (m *MySQLJournal) RecordTransaction(ctx context.Context, t domain.Transaction) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transactions (seq, is_member, subtotal, tax, total, cash, change_due, tax_rate, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Sequence, t.IsMember,
		t.Subtotal().StringFixed(2), t.Tax().StringFixed(2), t.Total().StringFixed(2),
		t.Cash.StringFixed(2), t.Change().StringFixed(2), t.TaxRate.String(),
		t.Date,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	for _, l := range t.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO transaction_lines (seq, item_name, quantity, unit_price, taxable, line_total)
			VALUES (?, ?, ?, ?, ?, ?)`,
			t.Sequence, l.Name, l.Quantity, l.UnitPrice.StringFixed(2), l.Taxable, l.Total().StringFixed(2),
		)
		if err != nil {
			return fmt.Errorf("insert line %q: %w", l.Name, err)
		}
	}

	return tx.Commit()
}
