package api

// DailyCostPoint представляет одну точку в дневном графике расходов пользователя
type DailyCostPoint struct {
	Date string  `json:"date"` // дата YYYY-MM-DD
	Cost float64 `json:"cost"` // стоимость за эту дату
}

// LeaderboardEntry представляет одну строку рейтинга
type LeaderboardEntry struct {
	Rank               int              `json:"rank"`               // позиция, начиная с 1
	UserID             string           `json:"userId"`             // UUID пользователя
	Name               string           `json:"name"`               // отображаемое имя
	Avatar             string           `json:"avatar"`             // URL аватара
	TotalCost          float64          `json:"totalCost"`          // сумма стоимости за период
	TotalInputTokens   int64            `json:"totalInputTokens"`   // сумма input токенов за период
	TotalOutputTokens  int64            `json:"totalOutputTokens"`  // сумма output токенов за период
	SubmissionCount    int64            `json:"submissionCount"`    // количество отправок за период
	LastSubmissionDate string           `json:"lastSubmissionDate"` // последняя дата отправки за все время
	DailyData          []DailyCostPoint `json:"dailyData"`          // дневной график за последние 365 дней
}

// LeaderboardResponse представляет ответ с рейтингом за выбранный период
type LeaderboardResponse struct {
	Period      string             `json:"period"`      // daily, weekly, monthly или all-time
	Leaderboard []LeaderboardEntry `json:"leaderboard"` // строки рейтинга, отсортированные по стоимости
}
