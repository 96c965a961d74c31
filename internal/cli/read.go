package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/reviewdeck/internal/application"
	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
)

func newReadCommand(opts *Options) *cobra.Command {
	var all bool
	var prNumber int
	var severity string
	var format string

	cmd := &cobra.Command{
		Use:   "read (START END | --all)",
		Short: "Print exported issue and comment files in numeric order",
		Long: "Read concatenates the exported files of a PR in ascending sequence order. " +
			"A severity filter restricts the output to issues of that severity; the range " +
			"or --all selects by sequence number. Read never mutates anything.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(args, all)
			if err != nil {
				return err
			}

			readOpts := application.ReadOptions{All: all, Start: start, End: end}
			if severity != "" {
				sev, ok := model.ParseSeverity(severity)
				if !ok {
					return fmt.Errorf("invalid severity %q: expected critical, major, or trivial", severity)
				}
				readOpts.Severity = sev
			}

			if format != "text" && format != "html" {
				return fmt.Errorf("invalid format %q: expected text or html", format)
			}

			d, err := opts.loadDeps(false)
			if err != nil {
				return err
			}

			if prNumber == 0 {
				prNumber, err = d.defaultPR()
				if err != nil {
					return err
				}
			}

			entries, err := application.NewReadService(d.store).Collect(cmd.Context(), prNumber, readOpts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No matching files.")
				return nil
			}

			if format == "html" {
				fmt.Fprint(out, renderEntriesHTML(entries))
				return nil
			}
			fmt.Fprint(out, renderEntriesText(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Read every exported file of the PR")
	cmd.Flags().IntVar(&prNumber, "pr", 0, "PR number (defaults to the only existing export)")
	cmd.Flags().StringVar(&severity, "severity", "", "Only issues of this severity (critical, major, trivial)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, html)")

	return cmd
}

func renderEntriesText(entries []application.ReadEntry) string {
	var b strings.Builder
	separator := separatorStyle.Render(strings.Repeat("-", 72))

	for i, entry := range entries {
		if i > 0 {
			b.WriteString(separator)
			b.WriteString("\n")
		}
		b.WriteString(headerStyle.Render(filepath.Base(entry.Path)))
		b.WriteString("\n\n")
		b.WriteString(strings.TrimRight(entry.Content, "\n"))
		b.WriteString("\n")
	}

	return b.String()
}

func renderEntriesHTML(entries []application.ReadEntry) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><body>\n")

	for i, entry := range entries {
		if i > 0 {
			b.WriteString("<hr/>\n")
		}
		b.WriteString("<article>\n")
		b.WriteString(RenderMarkdown(entry.Content))
		b.WriteString("\n</article>\n")
	}

	b.WriteString("</body></html>\n")
	return b.String()
}
