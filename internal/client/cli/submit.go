package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	clientapi "github.com/iudanet/ccboard/internal/client/api"
	"github.com/iudanet/ccboard/internal/client/storage"
	"github.com/iudanet/ccboard/internal/client/usage"
	"github.com/iudanet/ccboard/internal/models"
	"github.com/iudanet/ccboard/pkg/api"
)

// submitter отправляет один дневной отчет на сервер
type submitter interface {
	Submit(ctx context.Context, req api.SubmitRequest) (*api.SubmitResponse, error)
}

// bulkResult суммирует исход массовой отправки
type bulkResult struct {
	Total     int
	Succeeded int
	Created   int
	Updated   int
	Failed    int
}

func newSubmitCmd(app *app) *cobra.Command {
	var (
		date string
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit usage data to the leaderboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if all && date != "" {
				return fmt.Errorf("--date and --all are mutually exclusive")
			}
			return runSubmit(cmd, app, date, all)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Submit a specific date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&all, "all", false, "Submit every day in the usage report")

	return cmd
}

func runSubmit(cmd *cobra.Command, app *app, date string, all bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	settings, err := app.store.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	creds, err := app.store.GetCredentials(ctx, settings.APIURL)
	if err != nil {
		if errors.Is(err, storage.ErrNotLoggedIn) {
			return fmt.Errorf("not logged in. Run 'ccboard login' first")
		}
		return fmt.Errorf("load credentials: %w", err)
	}

	fmt.Fprintln(out, "Reading usage data...")
	days, err := app.source.Report(ctx)
	if err != nil {
		return fmt.Errorf("read usage report: %w", err)
	}

	client := clientapi.NewClient(settings.APIURL, creds.APIKey)

	if all {
		result := submitDays(ctx, client, days, out)
		fmt.Fprintf(out, "\nSubmitted %d of %d days (%d created, %d updated, %d failed)\n",
			result.Succeeded, result.Total, result.Created, result.Updated, result.Failed)

		if result.Succeeded > 0 {
			recordSubmission(ctx, app, settings)
		}
		if result.Failed > 0 {
			return fmt.Errorf("%d of %d submissions failed", result.Failed, result.Total)
		}
		return nil
	}

	targetDate := date
	if targetDate == "" {
		targetDate = time.Now().Format("2006-01-02")
	}

	day := usage.DayFor(days, targetDate)
	if day == nil {
		return fmt.Errorf("no usage data found for %s", targetDate)
	}

	resp, err := client.Submit(ctx, submitRequestFor(day))
	if err != nil {
		return err
	}

	if resp.Updated {
		fmt.Fprintf(out, "Updated existing submission for %s\n", day.Date)
	} else {
		fmt.Fprintf(out, "Submitted new data for %s\n", day.Date)
	}
	fmt.Fprintf(out, "  Cost: $%.2f\n", day.CostUSD)
	fmt.Fprintf(out, "  Input tokens: %d\n", day.TotalInputTokens())
	fmt.Fprintf(out, "  Output tokens: %d\n", day.TotalOutputTokens())

	recordSubmission(ctx, app, settings)

	return nil
}

// submitDays отправляет все дни последовательно, не прерываясь на неудачах
func submitDays(ctx context.Context, client submitter, days []models.UsageDay, out io.Writer) bulkResult {
	result := bulkResult{Total: len(days)}

	for i := range days {
		day := &days[i]

		resp, err := client.Submit(ctx, submitRequestFor(day))
		if err != nil {
			result.Failed++
			fmt.Fprintf(out, "  %s: failed: %v\n", day.Date, err)
			continue
		}

		result.Succeeded++
		if resp.Updated {
			result.Updated++
			fmt.Fprintf(out, "  %s: updated ($%.2f)\n", day.Date, day.CostUSD)
		} else {
			result.Created++
			fmt.Fprintf(out, "  %s: created ($%.2f)\n", day.Date, day.CostUSD)
		}
	}

	return result
}

// submitRequestFor строит запрос отправки из нормализованного дня
func submitRequestFor(day *models.UsageDay) api.SubmitRequest {
	return api.SubmitRequest{
		Date:           day.Date,
		DailyCost:      day.CostUSD,
		ModelBreakdown: day.ModelBreakdown(),
		InputTokens:    day.TotalInputTokens(),
		OutputTokens:   day.TotalOutputTokens(),
	}
}

// recordSubmission запоминает время последней успешной отправки
func recordSubmission(ctx context.Context, app *app, settings *storage.Settings) {
	settings.LastSubmission = time.Now().Format(time.RFC3339)
	// Неудача записи не отменяет уже состоявшуюся отправку
	_ = app.store.SaveSettings(ctx, settings)
}
