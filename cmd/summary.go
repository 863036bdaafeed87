package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/applytrack/applytrack/internal/fixtures"
)

var summaryStatus string

// now anchors relative dates. It can be overridden in tests.
var now = time.Now

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print applications and key analytics as tables",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVar(&summaryStatus, "status", "", "only list applications with this status")
}

func runSummary(cmd *cobra.Command, _ []string) error {
	cleanup, err := initLogging(nil)
	if err != nil {
		return err
	}
	defer cleanup()

	ds, err := loadFixtures()
	if err != nil {
		return err
	}
	out, err := renderSummary(ds, summaryStatus, now())
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

func renderSummary(ds *fixtures.Dataset, status string, at time.Time) (string, error) {
	if status != "" && !fixtures.KnownStatus(status) {
		return "", fmt.Errorf("unknown status %q", status)
	}

	var sb strings.Builder
	apps := ds.ApplicationsWhere(status, "")
	heading := "Applications"
	if status != "" {
		heading += " (" + fixtures.StatusTitle(status) + ")"
	}
	sb.WriteString(pterm.DefaultSection.Sprint(heading))

	if len(apps) == 0 {
		sb.WriteString(pterm.Gray("No applications match.") + "\n")
	} else {
		rows := pterm.TableData{{"Company", "Role", "Status", "Applied", "Source"}}
		for _, a := range apps {
			rows = append(rows, []string{
				a.Company,
				a.Role,
				colorStatus(a.Status),
				humanize.RelTime(a.AppliedAt, at, "ago", "from now"),
				a.Source,
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(rows).Srender()
		if err != nil {
			return "", fmt.Errorf("rendering applications: %w", err)
		}
		sb.WriteString(table + "\n")
	}

	an := ds.Analytics()
	sb.WriteString(pterm.DefaultSection.Sprint("Analytics"))
	kpis := pterm.TableData{
		{"Metric", "Value"},
		{"Applications sent", humanize.Comma(int64(an.TotalApplications))},
		{"Response rate", percent(an.ResponseRate)},
		{"Interview rate", percent(an.InterviewRate)},
		{"Offer rate", percent(an.OfferRate)},
		{"Avg. days to response", humanize.FtoaWithDigits(an.AvgDaysToResponse, 1)},
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(kpis).Srender()
	if err != nil {
		return "", fmt.Errorf("rendering analytics: %w", err)
	}
	sb.WriteString(table + "\n")
	return sb.String(), nil
}

func percent(f float64) string {
	return humanize.FtoaWithDigits(f*100, 1) + "%"
}

func colorStatus(status string) string {
	title := fixtures.StatusTitle(status)
	switch status {
	case fixtures.StatusOffer:
		return pterm.Green(title)
	case fixtures.StatusInterviewing, fixtures.StatusScreening:
		return pterm.Yellow(title)
	case fixtures.StatusRejected, fixtures.StatusGhosted, fixtures.StatusWithdrawn:
		return pterm.Red(title)
	default:
		return title
	}
}
