package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/ccboard/internal/client/storage"
)

var settingsKey = []byte("current")

// SaveCredentials stores the API key keyed by server URL
func (s *Storage) SaveCredentials(ctx context.Context, creds *storage.Credentials) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTokens)
		if bucket == nil {
			return fmt.Errorf("tokens bucket not found")
		}

		data, err := json.Marshal(creds)
		if err != nil {
			return fmt.Errorf("failed to marshal credentials: %w", err)
		}

		if err := bucket.Put([]byte(creds.ServerURL), data); err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}

		return nil
	})
}

// GetCredentials retrieves the API key stored for the server URL
func (s *Storage) GetCredentials(ctx context.Context, serverURL string) (*storage.Credentials, error) {
	var creds *storage.Credentials

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTokens)
		if bucket == nil {
			return fmt.Errorf("tokens bucket not found")
		}

		data := bucket.Get([]byte(serverURL))
		if data == nil {
			return storage.ErrNotLoggedIn
		}

		creds = &storage.Credentials{}
		if err := json.Unmarshal(data, creds); err != nil {
			return fmt.Errorf("failed to unmarshal credentials: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return creds, nil
}

// DeleteCredentials removes the stored API key for the server URL
func (s *Storage) DeleteCredentials(ctx context.Context, serverURL string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTokens)
		if bucket == nil {
			return fmt.Errorf("tokens bucket not found")
		}

		if bucket.Get([]byte(serverURL)) == nil {
			return storage.ErrNotLoggedIn
		}

		if err := bucket.Delete([]byte(serverURL)); err != nil {
			return fmt.Errorf("failed to delete credentials: %w", err)
		}

		return nil
	})
}

// GetSettings retrieves local settings, falling back to defaults
func (s *Storage) GetSettings(ctx context.Context) (*storage.Settings, error) {
	settings := storage.DefaultSettings()

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConfig)
		if bucket == nil {
			return fmt.Errorf("config bucket not found")
		}

		data := bucket.Get(settingsKey)
		if data == nil {
			// Настройки еще не сохранялись, остаются значения по умолчанию
			return nil
		}

		if err := json.Unmarshal(data, settings); err != nil {
			return fmt.Errorf("failed to unmarshal settings: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return settings, nil
}

// SaveSettings persists local settings
func (s *Storage) SaveSettings(ctx context.Context, settings *storage.Settings) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConfig)
		if bucket == nil {
			return fmt.Errorf("config bucket not found")
		}

		data, err := json.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}

		if err := bucket.Put(settingsKey, data); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}

		return nil
	})
}
