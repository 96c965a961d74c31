package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	githubadapter "github.com/ericfisherdev/reviewdeck/internal/adapter/driven/github"
	"github.com/ericfisherdev/reviewdeck/internal/adapter/driven/exportdir"
	"github.com/ericfisherdev/reviewdeck/internal/config"
	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
	"github.com/ericfisherdev/reviewdeck/internal/logging"
)

// deps bundles the configuration and wired adapters for one command invocation.
type deps struct {
	cfg   *config.Config
	level logging.Level
	store *exportdir.Store
	host  *githubadapter.Client
	repo  string
}

// loadDeps loads config, applies flag overrides, installs the default logger,
// and wires the export store. When needHost is true a GitHub client is also
// created, which requires a token and a resolvable owner/repo slug.
func (o *Options) loadDeps(needHost bool) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.OutputDir != "" {
		cfg.OutputDir = o.OutputDir
	}
	if o.Repo != "" {
		cfg.Repo = o.Repo
	}

	level := logging.ParseLevel(cfg.LogLevel)
	slog.SetDefault(logging.NewLogger(os.Stderr, level))

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	d := &deps{
		cfg:   cfg,
		level: level,
		store: exportdir.NewStore(cfg.OutputDir, loc),
	}

	if needHost {
		if cfg.GitHubToken == "" {
			return nil, fmt.Errorf("REVIEWDECK_GITHUB_TOKEN is not set: %w", model.ErrMissingToken)
		}
		repo, err := cfg.ResolveRepo()
		if err != nil {
			return nil, err
		}
		d.repo = repo
		d.host = githubadapter.NewClient(cfg.GitHubToken)
	}

	return d, nil
}

// checkAuth verifies the token against the authenticated-user endpoint so a
// revoked or mistyped token fails before any real work starts.
func (d *deps) checkAuth(ctx context.Context) error {
	login, err := d.host.ValidateToken(ctx)
	if err != nil {
		return fmt.Errorf("github authentication failed: %w", err)
	}
	slog.Debug("github token accepted", "login", login)
	return nil
}

// usePRLogger swaps the default logger for one that also writes the per-PR
// combined and error log files. The caller must invoke the returned close
// function when done.
func (d *deps) usePRLogger(prNumber int) (func(), error) {
	logger, closeFiles, err := logging.NewPRLogger(os.Stderr, d.level, d.store.PRDir(prNumber))
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return func() {
		if err := closeFiles(); err != nil {
			fmt.Fprintf(os.Stderr, "closing log files: %v\n", err)
		}
	}, nil
}

// defaultPR picks the PR to operate on when none was given: the only export
// directory present, or an error when there are zero or several.
func (d *deps) defaultPR() (int, error) {
	numbers, err := d.store.PRNumbers()
	if err != nil {
		return 0, err
	}
	switch len(numbers) {
	case 0:
		return 0, fmt.Errorf("no exports found under %s, run download first", d.cfg.OutputDir)
	case 1:
		return numbers[0], nil
	default:
		return 0, fmt.Errorf("multiple exports found under %s, pick one with --pr", d.cfg.OutputDir)
	}
}

// parsePositiveInt validates a numeric CLI argument.
func parsePositiveInt(value, name string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, value)
	}
	return n, nil
}
