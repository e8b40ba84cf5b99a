// Package storage определяет интерфейсы локального хранилища CLI клиента.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotLoggedIn indicates that no API key is stored for the server
var ErrNotLoggedIn = errors.New("not logged in")

// Credentials представляет сохраненный API ключ для одного сервера
type Credentials struct {
	ServerURL string    `json:"server_url"` // базовый URL сервера
	APIKey    string    `json:"api_key"`    // API ключ
	SavedAt   time.Time `json:"saved_at"`   // когда ключ был сохранен
}

// Settings представляет локальные настройки клиента
type Settings struct {
	APIURL         string `json:"api_url"`                   // базовый URL сервера
	AutoSubmit     string `json:"auto_submit"`               // off, daily или weekly
	LastSubmission string `json:"last_submission,omitempty"` // время последней отправки, RFC3339
}

// DefaultAPIURL используется, пока пользователь не настроил свой сервер
const DefaultAPIURL = "http://localhost:8080"

// DefaultSettings возвращает настройки до первого запуска config
func DefaultSettings() *Settings {
	return &Settings{
		APIURL:     DefaultAPIURL,
		AutoSubmit: "off",
	}
}

// CredentialStorage defines interface for local credential and settings persistence
type CredentialStorage interface {
	// SaveCredentials stores the API key for the credentials' server URL
	SaveCredentials(ctx context.Context, creds *Credentials) error

	// GetCredentials retrieves the API key stored for the server URL
	// Returns ErrNotLoggedIn if no key is stored
	GetCredentials(ctx context.Context, serverURL string) (*Credentials, error)

	// DeleteCredentials removes the stored API key for the server URL
	DeleteCredentials(ctx context.Context, serverURL string) error

	// GetSettings retrieves local settings, falling back to defaults
	GetSettings(ctx context.Context) (*Settings, error)

	// SaveSettings persists local settings
	SaveSettings(ctx context.Context, settings *Settings) error
}
