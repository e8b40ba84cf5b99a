package models

import "time"

// User представляет участника рейтинга
type User struct {
	ID         string    `json:"id"`           // UUID пользователя
	GithubID   string    `json:"github_id"`    // уникальный ID GitHub аккаунта
	Email      string    `json:"email"`        // verified primary email
	Name       string    `json:"name"`         // отображаемое имя
	Avatar     string    `json:"avatar"`       // URL аватара (может быть пустым)
	APIKey     string    `json:"api_key"`      // подписанный API ключ, уникален среди всех пользователей
	CreatedAt  time.Time `json:"created_at"`   // время создания
	LastSeenAt time.Time `json:"last_seen_at"` // время последнего логина
}

// Submission представляет usage одного пользователя за одну календарную дату.
// Для пары (user_id, date) существует не больше одной записи:
// повторная отправка перезаписывает метрики на месте.
type Submission struct {
	ID             string             `json:"id"`              // UUID записи
	UserID         string             `json:"user_id"`         // владелец
	Date           string             `json:"date"`            // дата YYYY-MM-DD, уникальна per user
	DailyCost      float64            `json:"daily_cost"`      // суммарная стоимость за день
	ModelBreakdown map[string]float64 `json:"model_breakdown"` // стоимость по моделям
	InputTokens    int64              `json:"input_tokens"`    // input токены
	OutputTokens   int64              `json:"output_tokens"`   // output токены
	CreatedAt      time.Time          `json:"created_at"`      // время первой отправки
}

// RateLimitWindow представляет счетчик fixed window для пары (identifier, endpoint)
type RateLimitWindow struct {
	Identifier  string    `json:"identifier"`   // user id или IP
	Endpoint    string    `json:"endpoint"`     // имя endpoint'а
	Count       int       `json:"count"`        // количество запросов в текущем окне
	WindowStart time.Time `json:"window_start"` // начало текущего окна
}
