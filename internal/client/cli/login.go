package cli

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/iudanet/ccboard/internal/client/api"
	"github.com/iudanet/ccboard/internal/client/storage"
)

func newLoginCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the leaderboard server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogin(cmd, app)
		},
	}
}

func runLogin(cmd *cobra.Command, app *app) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	settings, err := app.store.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	authURL := settings.APIURL + "/api/auth/github?source=cli"

	// Открытие браузера это best effort: при неудаче URL печатается
	if err := openBrowser(authURL); err != nil {
		fmt.Fprintf(out, "Could not open browser automatically.\n")
	}

	fmt.Fprintf(out, "Complete the login in your browser:\n  %s\n\n", authURL)
	fmt.Fprintln(out, "1. Sign in with GitHub")
	fmt.Fprintln(out, "2. Copy your API key from the Settings page")
	fmt.Fprintln(out, "3. Paste it below")
	fmt.Fprintln(out)

	apiKey, err := readSecret("Paste your API key here: ")
	if err != nil {
		return fmt.Errorf("read api key: %w", err)
	}
	if apiKey == "" {
		return fmt.Errorf("api key is required")
	}

	// Ключ проверяется против сервера до сохранения
	client := api.NewClient(settings.APIURL, apiKey)
	me, err := client.Me(ctx)
	if err != nil {
		return fmt.Errorf("api key validation failed: %w", err)
	}

	err = app.store.SaveCredentials(ctx, &storage.Credentials{
		ServerURL: settings.APIURL,
		APIKey:    apiKey,
		SavedAt:   time.Now(),
	})
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	fmt.Fprintf(out, "\nLogged in as %s <%s>\n", me.Name, me.Email)
	fmt.Fprintln(out, "Run 'ccboard submit' to submit your usage.")

	return nil
}

// openBrowser пытается открыть URL системным способом
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

// readSecret читает значение без отображения на экране
func readSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	secretBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Переход на новую строку после ввода
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secretBytes)), nil
}
