package models

// ModelUsage представляет использование одной модели за один день
type ModelUsage struct {
	CostUSD      float64 `json:"costUSD"`      // стоимость
	InputTokens  int64   `json:"inputTokens"`  // input токены
	OutputTokens int64   `json:"outputTokens"` // output токены
}

// UsageDay представляет нормализованный дневной отчет из локального usage источника.
// Это единственная форма, которую видит submission клиент, независимо от того,
// в каком формате внешний инструмент отдал отчет.
type UsageDay struct {
	Date    string                `json:"date"`   // дата YYYY-MM-DD
	CostUSD float64               `json:"costUSD"` // суммарная стоимость за день
	Models  map[string]ModelUsage `json:"models"` // разбивка по моделям
}

// TotalInputTokens возвращает сумму input токенов по всем моделям
func (d *UsageDay) TotalInputTokens() int64 {
	var total int64
	for _, m := range d.Models {
		total += m.InputTokens
	}
	return total
}

// TotalOutputTokens возвращает сумму output токенов по всем моделям
func (d *UsageDay) TotalOutputTokens() int64 {
	var total int64
	for _, m := range d.Models {
		total += m.OutputTokens
	}
	return total
}

// ModelBreakdown возвращает отображение модель → стоимость для отправки на сервер
func (d *UsageDay) ModelBreakdown() map[string]float64 {
	breakdown := make(map[string]float64, len(d.Models))
	for name, m := range d.Models {
		breakdown[name] = m.CostUSD
	}
	return breakdown
}
