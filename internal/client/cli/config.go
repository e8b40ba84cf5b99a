package cli

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// cronTag метит установленные нами строки crontab
const cronTag = "ccboard auto-submit"

func newConfigCmd(app *app) *cobra.Command {
	var (
		apiURL     string
		autoSubmit string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configure the client",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, app, apiURL, autoSubmit)
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "Leaderboard server URL")
	cmd.Flags().StringVar(&autoSubmit, "auto-submit", "", "Auto-submit schedule: daily, weekly or off")

	return cmd
}

func runConfig(cmd *cobra.Command, app *app, apiURL, autoSubmit string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	settings, err := app.store.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	changed := false

	if apiURL != "" {
		normalized, err := normalizeServerURL(apiURL)
		if err != nil {
			return err
		}

		settings.APIURL = normalized
		changed = true
		fmt.Fprintf(out, "API URL configured: %s\n", normalized)
		fmt.Fprintln(out, "Run 'ccboard login' to authenticate against the new server.")
	}

	if autoSubmit != "" {
		schedule := strings.ToLower(autoSubmit)
		if schedule != "daily" && schedule != "weekly" && schedule != "off" {
			return fmt.Errorf("invalid schedule %q: must be one of daily, weekly, off", autoSubmit)
		}

		settings.AutoSubmit = schedule
		changed = true

		if schedule == "off" {
			if err := removeCronJob(); err != nil {
				fmt.Fprintf(out, "Warning: could not update crontab: %v\n", err)
				fmt.Fprintln(out, "Remove the ccboard entry manually with 'crontab -e'.")
			} else {
				fmt.Fprintln(out, "Auto-submit disabled")
			}
		} else {
			if err := installCronJob(schedule); err != nil {
				fmt.Fprintf(out, "Warning: could not install crontab entry: %v\n", err)
				fmt.Fprintf(out, "Add this line manually with 'crontab -e':\n  %s\n", cronEntry(schedule, executablePath()))
			} else {
				fmt.Fprintf(out, "Auto-submit enabled: %s\n", schedule)
			}
		}
	}

	if changed {
		if err := app.store.SaveSettings(ctx, settings); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		return nil
	}

	// Без флагов показываем текущую конфигурацию
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  API URL:     %s\n", settings.APIURL)
	fmt.Fprintf(out, "  Auto-submit: %s\n", settings.AutoSubmit)
	if settings.LastSubmission != "" {
		fmt.Fprintf(out, "  Last submission: %s\n", settings.LastSubmission)
	}

	return nil
}

// normalizeServerURL валидирует URL и убирает trailing slash
func normalizeServerURL(raw string) (string, error) {
	trimmed := strings.TrimRight(raw, "/")

	u, err := url.Parse(trimmed)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid URL %q: include the protocol, e.g. https://board.example.com", raw)
	}

	return trimmed, nil
}

// cronSchedule переводит имя расписания в cron выражение
func cronSchedule(schedule string) string {
	if schedule == "weekly" {
		// Воскресенье, 18:00
		return "0 18 * * 0"
	}
	// Каждый день в 18:00
	return "0 18 * * *"
}

// cronEntry строит строку crontab для расписания
func cronEntry(schedule, executable string) string {
	return fmt.Sprintf("%s %s submit --all", cronSchedule(schedule), executable)
}

// stripCronEntries убирает ранее установленные нами строки
func stripCronEntries(crontab string) []string {
	var kept []string
	for _, line := range strings.Split(crontab, "\n") {
		if strings.Contains(line, cronTag) || strings.Contains(line, "ccboard submit") {
			continue
		}
		kept = append(kept, line)
	}

	// Убираем хвостовые пустые строки
	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}

	return kept
}

// executablePath возвращает путь текущего бинаря для строки crontab
func executablePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "ccboard"
	}
	return exe
}

// readCrontab читает текущий crontab, пустой для отсутствующего
func readCrontab() string {
	output, err := exec.Command("crontab", "-l").Output()
	if err != nil {
		// Отсутствующий crontab это не ошибка
		return ""
	}
	return string(output)
}

// writeCrontab устанавливает новый crontab через временный файл
func writeCrontab(content string) error {
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("ccboard-crontab-%d.tmp", os.Getpid()))
	if err := os.WriteFile(tmpFile, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write temp crontab: %w", err)
	}
	defer func() { _ = os.Remove(tmpFile) }()

	if err := exec.Command("crontab", tmpFile).Run(); err != nil {
		return fmt.Errorf("install crontab: %w", err)
	}

	return nil
}

// installCronJob добавляет строку автоотправки, заменяя прежнюю
func installCronJob(schedule string) error {
	lines := stripCronEntries(readCrontab())
	lines = append(lines, "# "+cronTag+" ("+schedule+")")
	lines = append(lines, cronEntry(schedule, executablePath()))

	return writeCrontab(strings.Join(lines, "\n") + "\n")
}

// removeCronJob убирает строку автоотправки из crontab
func removeCronJob() error {
	existing := readCrontab()
	if existing == "" {
		return nil
	}

	lines := stripCronEntries(existing)
	if len(lines) == 0 {
		// Crontab остался пустым, убираем его целиком
		_ = exec.Command("crontab", "-r").Run()
		return nil
	}

	return writeCrontab(strings.Join(lines, "\n") + "\n")
}
