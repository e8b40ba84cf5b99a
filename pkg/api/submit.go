package api

// SubmitRequest представляет запрос на отправку usage данных за один день
type SubmitRequest struct {
	Date           string             `json:"date"`           // календарная дата YYYY-MM-DD
	DailyCost      float64            `json:"dailyCost"`      // суммарная стоимость за день в USD
	ModelBreakdown map[string]float64 `json:"modelBreakdown"` // стоимость по каждой модели
	InputTokens    int64              `json:"inputTokens"`    // суммарные input токены
	OutputTokens   int64              `json:"outputTokens"`   // суммарные output токены
}

// SubmitResponse представляет ответ сервера на отправку usage данных
type SubmitResponse struct {
	Success bool `json:"success"` // запись сохранена
	Updated bool `json:"updated"` // true если запись за эту дату уже существовала и была перезаписана
}

// MeResponse представляет информацию о текущем пользователе
type MeResponse struct {
	ID        string `json:"id"`        // UUID пользователя
	Name      string `json:"name"`      // отображаемое имя
	Email     string `json:"email"`     // email
	Avatar    string `json:"avatar"`    // URL аватара (может быть пустым)
	APIKey    string `json:"apiKey"`    // текущий API ключ
	CreatedAt int64  `json:"createdAt"` // unix время создания аккаунта
}

// RegenerateKeyResponse представляет ответ на перегенерацию API ключа
type RegenerateKeyResponse struct {
	APIKey string `json:"apiKey"` // новый API ключ (старый мгновенно недействителен)
}

// ConfigResponse представляет публичную конфигурацию сервера
type ConfigResponse struct {
	APIURL string `json:"apiUrl"` // базовый URL сервера
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`       // HTTP статус код
	Message    string   `json:"message"`          // описание ошибки
	Fields     []string `json:"fields,omitempty"` // нарушенные поля для validation ошибок
}
