package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jerrymart/quickmart/internal/core/domain"
)

func TestFileArchive_SaveReceipt(t *testing.T) {
	dir := t.TempDir()
	archive := NewFileArchive(filepath.Join(dir, "receipts"), filepath.Join(dir, "inventory.txt"))

	txn := domain.NewTransaction(12,
		time.Date(2025, time.March, 4, 9, 0, 0, 0, time.UTC),
		nil, false, decimal.Zero, decimal.RequireFromString("0.065"))

	if err := archive.SaveReceipt(txn, "RECEIPT BODY"); err != nil {
		t.Fatalf("save receipt failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "receipts", "transaction_000012_342025.txt"))
	if err != nil {
		t.Fatalf("expected receipt file: %v", err)
	}
	if string(data) != "RECEIPT BODY\n" {
		t.Errorf("unexpected receipt content %q", data)
	}
}

func TestFileArchive_SaveInventorySnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.txt")
	archive := NewFileArchive(dir, path)

	if err := archive.SaveInventorySnapshot("Milk: 8, $4.00, $3.00, Tax-Exempt"); err != nil {
		t.Fatalf("save snapshot failed: %v", err)
	}

	text, err := LoadCatalogText(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if text != "Milk: 8, $4.00, $3.00, Tax-Exempt\n" {
		t.Errorf("unexpected snapshot content %q", text)
	}
}

func TestLoadCatalogText_Missing(t *testing.T) {
	if _, err := LoadCatalogText(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing catalog file")
	}
}
