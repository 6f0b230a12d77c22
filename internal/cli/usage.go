package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/terraincognita07/fitlog/internal/db"
	"gorm.io/gorm"
)

// RunUsageCommand prints per-day coach model usage for the last days days,
// today included.
func RunUsageCommand(database *gorm.DB, days int, now time.Time, out io.Writer) error {
	if days < 1 {
		return fmt.Errorf("days must be positive, got %d", days)
	}

	today := now.UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(days - 1))
	rows, err := db.NewAIUsageRepository(database).DailyTotals(since)
	if err != nil {
		return fmt.Errorf("load usage: %w", err)
	}
	if len(rows) == 0 {
		fmt.Fprintf(out, "No coach usage since %s\n", since.Format(time.DateOnly))
		return nil
	}

	table := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(table, "DAY\tCALLS\tPROMPT TOKENS\tCOMPLETION TOKENS")
	var calls, prompt, completion int64
	for _, row := range rows {
		fmt.Fprintf(table, "%s\t%d\t%d\t%d\n", row.Day, row.Calls, row.PromptTokens, row.CompletionTokens)
		calls += row.Calls
		prompt += row.PromptTokens
		completion += row.CompletionTokens
	}
	fmt.Fprintf(table, "TOTAL\t%d\t%d\t%d\n", calls, prompt, completion)
	return table.Flush()
}
