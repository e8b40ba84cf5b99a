package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	clientapi "github.com/iudanet/ccboard/internal/client/api"
	"github.com/iudanet/ccboard/internal/client/storage"
)

func newStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status and local settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, app)
		},
	}
}

func runStatus(cmd *cobra.Command, app *app) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	settings, err := app.store.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	fmt.Fprintf(out, "Server:          %s\n", settings.APIURL)
	fmt.Fprintf(out, "Auto-submit:     %s\n", settings.AutoSubmit)
	if settings.LastSubmission != "" {
		if ts, err := time.Parse(time.RFC3339, settings.LastSubmission); err == nil {
			fmt.Fprintf(out, "Last submission: %s\n", ts.Local().Format("2006-01-02 15:04:05"))
		} else {
			fmt.Fprintf(out, "Last submission: %s\n", settings.LastSubmission)
		}
	}

	creds, err := app.store.GetCredentials(ctx, settings.APIURL)
	if err != nil {
		if errors.Is(err, storage.ErrNotLoggedIn) {
			fmt.Fprintln(out, "Status:          not logged in")
			fmt.Fprintln(out, "\nRun 'ccboard login' to authenticate.")
			return nil
		}
		return fmt.Errorf("load credentials: %w", err)
	}

	// Проверяем, что сохраненный ключ все еще действителен
	client := clientapi.NewClient(settings.APIURL, creds.APIKey)
	me, err := client.Me(ctx)
	if err != nil {
		fmt.Fprintln(out, "Status:          stored API key is not valid")
		fmt.Fprintln(out, "\nRun 'ccboard login' to re-authenticate.")
		return nil
	}

	fmt.Fprintf(out, "Status:          logged in as %s <%s>\n", me.Name, me.Email)

	return nil
}
