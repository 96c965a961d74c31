package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/reviewdeck/internal/application"
	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
)

func newDownloadCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "download [PR_NUMBER]",
		Short: "Download review threads and comments for a PR",
		Long: "Download fetches the review threads and PR comments left by the configured " +
			"reviewer bots, classifies each thread by severity, and writes one markdown file " +
			"per finding plus a summary. Without a PR number the latest open PR is used.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prNumber := 0
			if len(args) == 1 {
				n, err := parsePositiveInt(args[0], "PR_NUMBER")
				if err != nil {
					return err
				}
				prNumber = n
			}

			d, err := opts.loadDeps(true)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := d.checkAuth(ctx); err != nil {
				return err
			}

			svc := application.NewExportService(d.host, d.store, d.repo, d.cfg.BotLogins)

			pr, err := svc.SelectPR(ctx, prNumber)
			if err != nil {
				return err
			}

			closeLogs, err := d.usePRLogger(pr.Number)
			if err != nil {
				return err
			}
			defer closeLogs()

			result, err := svc.Download(ctx, pr)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderDownloadReport(result))
			return nil
		},
	}
}

func renderDownloadReport(result *application.ExportResult) string {
	s := result.Summary
	return fmt.Sprintf("%s\n%s\n%s",
		headerStyle.Render(fmt.Sprintf("PR #%d: %s", result.PR.Number, result.PR.Title)),
		fmt.Sprintf("Issues: %d (Critical %s, Major %s, Trivial %s)",
			s.TotalIssues(),
			severityCount(model.SeverityCritical, s.Critical),
			severityCount(model.SeverityMajor, s.Major),
			severityCount(model.SeverityTrivial, s.Trivial),
		),
		fmt.Sprintf("Comments: %d, Unresolved: %d, Resolved: %d", s.Comments, s.Unresolved, s.Resolved),
	)
}
