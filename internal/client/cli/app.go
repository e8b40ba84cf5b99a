package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iudanet/ccboard/internal/client/storage"
	"github.com/iudanet/ccboard/internal/client/storage/boltdb"
	"github.com/iudanet/ccboard/internal/client/usage"
)

// app держит зависимости команд CLI
type app struct {
	store  storage.CredentialStorage
	source *usage.Source
}

// newApp открывает локальное хранилище в ~/.ccboard и собирает зависимости.
// Команда usage репортера переопределяется через CCBOARD_USAGE_COMMAND.
func newApp() (*app, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	dir := filepath.Join(home, ".ccboard")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	store, err := boltdb.New(context.Background(), filepath.Join(dir, "ccboard.db"))
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}

	return &app{
		store:  store,
		source: usage.NewSource(os.Getenv("CCBOARD_USAGE_COMMAND")),
	}, nil
}
