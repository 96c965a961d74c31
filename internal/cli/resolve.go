package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/reviewdeck/internal/application"
	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
)

func newResolveCommand(opts *Options) *cobra.Command {
	var all bool
	var prNumber int

	cmd := &cobra.Command{
		Use:   "resolve (START END | --all)",
		Short: "Resolve a range of unresolved issues remotely and locally",
		Long: "Resolve calls the review-thread resolve mutation for each unresolved issue " +
			"in the given sequence range, then renames the file and flips its checkbox. " +
			"Items are independent: a failure on one issue never blocks the rest.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(args, all)
			if err != nil {
				return err
			}

			d, err := opts.loadDeps(true)
			if err != nil {
				return err
			}

			if err := d.checkAuth(cmd.Context()); err != nil {
				return err
			}

			if prNumber == 0 {
				prNumber, err = d.defaultPR()
				if err != nil {
					return err
				}
			}

			closeLogs, err := d.usePRLogger(prNumber)
			if err != nil {
				return err
			}
			defer closeLogs()

			svc := application.NewResolveService(d.host, d.store)
			result, err := svc.ResolveRange(cmd.Context(), prNumber, start, end, all)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderBatchReport(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Resolve every unresolved issue of the PR")
	cmd.Flags().IntVar(&prNumber, "pr", 0, "PR number (defaults to the only existing export)")

	return cmd
}

// parseRange validates the positional range arguments. With --all no range is
// accepted; otherwise both bounds are required positive integers.
func parseRange(args []string, all bool) (int, int, error) {
	if all {
		if len(args) != 0 {
			return 0, 0, fmt.Errorf("--all takes no range arguments")
		}
		return 0, 0, nil
	}

	if len(args) != 2 {
		return 0, 0, fmt.Errorf("a START and END issue number are required unless --all is given")
	}

	start, err := parsePositiveInt(args[0], "START")
	if err != nil {
		return 0, 0, err
	}
	end, err := parsePositiveInt(args[1], "END")
	if err != nil {
		return 0, 0, err
	}
	if end < start {
		return 0, 0, fmt.Errorf("END (%d) must not be less than START (%d)", end, start)
	}

	return start, end, nil
}

func renderBatchReport(result *model.BatchResult) string {
	if result.Examined() == 0 {
		return "No unresolved issues in range."
	}
	return fmt.Sprintf("%s  %s",
		resolvedStyle.Render(fmt.Sprintf("✓ Resolved: %d", result.Resolved)),
		failedStyle.Render(fmt.Sprintf("✗ Failed: %d", result.Failed)),
	)
}
