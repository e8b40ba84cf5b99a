// Package usage запускает внешний usage репортер и нормализует его вывод.
package usage

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/iudanet/ccboard/internal/models"
)

// DefaultCommand — команда, которой клиент читает дневной usage отчет
const DefaultCommand = "ccusage daily --json"

// commandTimeout ограничивает время работы внешнего репортера
const commandTimeout = 2 * time.Minute

// Source запускает настраиваемую команду отчета и приводит ее вывод
// к единой форме []models.UsageDay. Остальной клиент не знает, в каком
// из форматов внешний инструмент отдал данные.
type Source struct {
	command string
}

// NewSource создает источник usage данных.
// Пустая команда заменяется на DefaultCommand.
func NewSource(command string) *Source {
	if command == "" {
		command = DefaultCommand
	}
	return &Source{command: command}
}

// Report запускает команду отчета и возвращает нормализованные дни
func (s *Source) Report(ctx context.Context) ([]models.UsageDay, error) {
	runCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	// Команда задается строкой и может содержать аргументы
	cmd := exec.CommandContext(runCtx, "sh", "-c", s.command)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("usage command failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("usage command failed: %w", err)
	}

	return Normalize(output)
}

// Normalize разбирает вывод репортера в любом из двух известных форматов:
// плоский JSON массив дней или объект-обертка {"daily": [...]}
func Normalize(raw []byte) ([]models.UsageDay, error) {
	var days []models.UsageDay
	if err := json.Unmarshal(raw, &days); err == nil {
		return days, nil
	}

	var wrapped struct {
		Daily []models.UsageDay `json:"daily"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Daily != nil {
		return wrapped.Daily, nil
	}

	return nil, fmt.Errorf("unrecognized usage report format")
}

// DayFor находит отчет за конкретную дату, nil если данных за дату нет
func DayFor(days []models.UsageDay, date string) *models.UsageDay {
	for i := range days {
		if days[i].Date == date {
			return &days[i]
		}
	}
	return nil
}
