package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DatePattern определяет допустимый формат даты отправки
// Строго YYYY-MM-DD, дата дополнительно проверяется на календарную корректность
var DatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidationError представляет ошибку валидации с перечнем нарушенных полей
type ValidationError struct {
	Fields []string
}

// Error возвращает описание ошибки со списком полей
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid submission data: %s", strings.Join(e.Fields, ", "))
}

// ValidateDate проверяет, что date соответствует формату YYYY-MM-DD
// и является существующей календарной датой
func ValidateDate(date string) error {
	if !DatePattern.MatchString(date) {
		return fmt.Errorf("date must be in YYYY-MM-DD format")
	}

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("date is not a valid calendar date")
	}

	return nil
}

// ValidateSubmission проверяет все поля запроса на отправку usage данных.
// Возвращает *ValidationError со ВСЕМИ нарушенными полями, а не только первым:
// запрос либо полностью валиден, либо полностью отклоняется.
func ValidateSubmission(date string, dailyCost float64, breakdown map[string]float64, inputTokens, outputTokens int64) error {
	var fields []string

	if err := ValidateDate(date); err != nil {
		fields = append(fields, "date")
	}

	if dailyCost <= 0 {
		fields = append(fields, "dailyCost")
	}

	// Разбивка по моделям обязательна; стоимость каждой модели должна быть числом >= 0
	if breakdown == nil {
		fields = append(fields, "modelBreakdown")
	} else {
		for name, cost := range breakdown {
			if name == "" || cost < 0 {
				fields = append(fields, "modelBreakdown")
				break
			}
		}
	}

	if inputTokens < 0 {
		fields = append(fields, "inputTokens")
	}

	if outputTokens < 0 {
		fields = append(fields, "outputTokens")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

// ValidPeriods перечисляет допустимые периоды рейтинга
var ValidPeriods = []string{"daily", "weekly", "monthly", "all-time"}

// ValidatePeriod проверяет, что period является одним из допустимых значений
func ValidatePeriod(period string) error {
	for _, p := range ValidPeriods {
		if period == p {
			return nil
		}
	}
	return fmt.Errorf("invalid period %q: must be one of: %s", period, strings.Join(ValidPeriods, ", "))
}
