// Package oauth реализует GitHub OAuth flow для web входа.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// exchangeTimeout ограничивает обмен кода и запросы к GitHub API
const exchangeTimeout = 10 * time.Second

var (
	// ErrEmailDomainNotAllowed возвращается, когда primary email не проходит domain gate
	ErrEmailDomainNotAllowed = errors.New("email domain not allowed")

	// ErrNoVerifiedEmail возвращается, когда у аккаунта нет primary verified email
	ErrNoVerifiedEmail = errors.New("no verified primary email on github account")
)

// GithubUser представляет профиль пользователя GitHub
type GithubUser struct {
	ID     int64  `json:"id"`
	Login  string `json:"login"`
	Name   string `json:"name"`
	Avatar string `json:"avatar_url"`
	Email  string `json:"-"`
}

// githubEmail представляет элемент ответа /user/emails
type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// GithubProvider выполняет OAuth обмен и запросы к GitHub API
type GithubProvider struct {
	config         *oauth2.Config
	requiredDomain string
	apiBaseURL     string
}

// NewGithubProvider создает провайдер GitHub OAuth.
// requiredDomain — опциональный suffix-фильтр primary email (пустая строка отключает)
func NewGithubProvider(clientID, clientSecret, redirectURL, requiredDomain string) *GithubProvider {
	return &GithubProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     github.Endpoint,
			RedirectURL:  redirectURL,
			Scopes:       []string{"user:email"},
		},
		requiredDomain: requiredDomain,
		apiBaseURL:     "https://api.github.com",
	}
}

// AuthCodeURL возвращает URL авторизации GitHub для указанного state
func (p *GithubProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// Exchange обменивает authorization code на профиль пользователя.
// Подтягивает primary verified email и применяет domain gate.
func (p *GithubProvider) Exchange(ctx context.Context, code string) (*GithubUser, error) {
	exchangeCtx, cancel := context.WithTimeout(ctx, exchangeTimeout)
	defer cancel()

	token, err := p.config.Exchange(exchangeCtx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange auth code: %w", err)
	}

	client := p.config.Client(exchangeCtx, token)

	user, err := p.fetchUser(exchangeCtx, client)
	if err != nil {
		return nil, err
	}

	email, err := p.fetchPrimaryEmail(exchangeCtx, client)
	if err != nil {
		return nil, err
	}
	user.Email = email

	if p.requiredDomain != "" && !strings.HasSuffix(strings.ToLower(email), strings.ToLower(p.requiredDomain)) {
		return nil, ErrEmailDomainNotAllowed
	}

	// GitHub профиль может не иметь display name
	if user.Name == "" {
		user.Name = user.Login
	}

	return user, nil
}

// fetchUser запрашивает GET /user
func (p *GithubProvider) fetchUser(ctx context.Context, client *http.Client) (*GithubUser, error) {
	var user GithubUser
	if err := p.getJSON(ctx, client, "/user", &user); err != nil {
		return nil, fmt.Errorf("fetch github user: %w", err)
	}
	return &user, nil
}

// fetchPrimaryEmail запрашивает GET /user/emails и выбирает primary verified адрес
func (p *GithubProvider) fetchPrimaryEmail(ctx context.Context, client *http.Client) (string, error) {
	var emails []githubEmail
	if err := p.getJSON(ctx, client, "/user/emails", &emails); err != nil {
		return "", fmt.Errorf("fetch github emails: %w", err)
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}

	return "", ErrNoVerifiedEmail
}

// getJSON выполняет аутентифицированный GET запрос к GitHub API
func (p *GithubProvider) getJSON(ctx context.Context, client *http.Client, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github api %s returned status %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
