package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chronoerrors "github.com/julianstephens/chronoforge/internal/errors"
	"github.com/julianstephens/chronoforge/internal/keyring"
	"github.com/julianstephens/chronoforge/internal/storage"
	"github.com/julianstephens/chronoforge/internal/storage/postgres"
	"github.com/julianstephens/chronoforge/internal/storage/sqlite"
)

const credentialsHint = `store the connection string in the OS keyring ("chronoforge keyring set ...") and use --config=keyring, ` +
	`export CHRONOFORGE_DB_CONNECTION, or use a .pgpass file with a password-free connection string`

// ExpandPath replaces a leading "~" with the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// OpenStore selects a storage provider for a --config value. PostgreSQL URLs
// given on the command line must not embed a password; connection strings
// from the keyring or environment may.
func OpenStore(config string) (storage.Provider, error) {
	config = strings.TrimSpace(config)

	if config == keyring.ConfigValue {
		connStr, err := keyring.ResolveConnectionString()
		if err != nil {
			return nil, chronoerrors.WithHint(err, `run "chronoforge keyring set <connection-string>" first`)
		}
		if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		return postgres.New(connStr), nil
	}

	if postgres.IsConnString(config) {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, chronoerrors.WithHint(err, credentialsHint)
			}
			return nil, err
		}
		return postgres.New(config), nil
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}
