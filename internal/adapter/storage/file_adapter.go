package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jerrymart/quickmart/internal/core/domain"
)

// FileArchive writes receipts and the post-sale inventory snapshot to disk.
type FileArchive struct {
	receiptDir    string
	inventoryPath string
}

func NewFileArchive(receiptDir, inventoryPath string) *FileArchive {
	return &FileArchive{receiptDir: receiptDir, inventoryPath: inventoryPath}
}

func (a *FileArchive) SaveReceipt(t domain.Transaction, receipt string) error {
	if err := os.MkdirAll(a.receiptDir, 0o755); err != nil {
		return fmt.Errorf("create receipt dir: %w", err)
	}
	path := filepath.Join(a.receiptDir, t.ReceiptFilename())
	if err := os.WriteFile(path, []byte(receipt+"\n"), 0o644); err != nil {
		return fmt.Errorf("write receipt: %w", err)
	}
	return nil
}

func (a *FileArchive) SaveInventorySnapshot(snapshot string) error {
	if err := os.WriteFile(a.inventoryPath, []byte(snapshot+"\n"), 0o644); err != nil {
		return fmt.Errorf("write inventory snapshot: %w", err)
	}
	return nil
}

// LoadCatalogText reads the catalog file for service start-up.
func LoadCatalogText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read catalog: %w", err)
	}
	return string(data), nil
}
