package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/ingest"
)

func TestValidateInputDirectory(t *testing.T) {
	v := NewInputValidator(nil)

	t.Run("missing directory", func(t *testing.T) {
		err := v.ValidateInputDirectory(filepath.Join(t.TempDir(), "nope"))
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("missing orders file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ingest.LinesFile), []byte("order_id\n"), 0o644))
		err := v.ValidateInputDirectory(dir)
		assert.ErrorContains(t, err, ingest.OrdersFile)
	})

	t.Run("complete directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ingest.OrdersFile), []byte("id\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ingest.LinesFile), []byte("order_id\n"), 0o644))
		assert.NoError(t, v.ValidateInputDirectory(dir))
	})

	t.Run("path is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		err := v.ValidateInputDirectory(path)
		assert.ErrorContains(t, err, "not a directory")
	})
}

func TestValidateWorkbook(t *testing.T) {
	v := NewInputValidator(nil)

	t.Run("missing file", func(t *testing.T) {
		err := v.ValidateWorkbook(filepath.Join(t.TempDir(), "book.xlsx"))
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("wrong extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "book.csv")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		err := v.ValidateWorkbook(path)
		assert.ErrorContains(t, err, "unsupported extension")
	})

	t.Run("valid workbook path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "book.xlsx")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		assert.NoError(t, v.ValidateWorkbook(path))
	})
}
