package file_test

import (
	"testing"

	"github.com/statuml/statuml/internal/adapters/file"
	"github.com/statuml/statuml/pkg/ports"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunProjectStoreContract(t, store)
}

func TestFileStore_DefaultPath(t *testing.T) {
	store := file.New("")
	if store.BasePath == "" {
		t.Error("Expected a default base path")
	}
}
