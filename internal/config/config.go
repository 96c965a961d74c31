// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration. A .env file in the working
// directory is loaded first (without overriding real environment variables),
// then the environment is parsed into this struct.
type Config struct {
	GitHubToken string   `env:"REVIEWDECK_GITHUB_TOKEN"`
	Repo        string   `env:"REVIEWDECK_REPO"`
	OutputDir   string   `env:"REVIEWDECK_OUTPUT_DIR" envDefault:".reviews"`
	WorkDir     string   `env:"REVIEWDECK_WORK_DIR" envDefault:"."`
	LogLevel    string   `env:"REVIEWDECK_LOG_LEVEL" envDefault:"info"`
	Timezone    string   `env:"REVIEWDECK_TZ"`
	BotLogins   []string `env:"REVIEWDECK_BOT_LOGINS" envSeparator:"," envDefault:"coderabbitai[bot]"`
}

// Load reads configuration from the environment and returns a validated
// Config. The GitHub token is not required here; commands that need it check
// for it themselves so that read-only commands work without one.
func Load() (*Config, error) {
	_ = godotenv.Load() // Optional; absence of a .env file is not an error.

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	for i, bot := range cfg.BotLogins {
		cfg.BotLogins[i] = strings.TrimSpace(bot)
	}

	if !filepath.IsAbs(cfg.OutputDir) {
		cfg.OutputDir = filepath.Join(cfg.WorkDir, cfg.OutputDir)
	}

	return &cfg, nil
}

// Location resolves the configured timezone for timestamp formatting.
// Empty means the system local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("REVIEWDECK_TZ has invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// remotePatterns match the common GitHub remote URL shapes:
// git@github.com:owner/repo.git and https://github.com/owner/repo(.git).
var remotePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^git@[^:]+:([^/]+/[^/]+?)(?:\.git)?$`),
	regexp.MustCompile(`^https?://[^/]+/([^/]+/[^/]+?)(?:\.git)?$`),
}

// ResolveRepo returns the owner/repo slug: the configured value when set,
// otherwise derived from the git remote "origin" of the working directory.
func (c *Config) ResolveRepo() (string, error) {
	if c.Repo != "" {
		return c.Repo, nil
	}

	out, err := exec.Command("git", "-C", c.WorkDir, "config", "--get", "remote.origin.url").Output()
	if err != nil {
		return "", fmt.Errorf("REVIEWDECK_REPO is not set and git remote detection failed in %s: %w", c.WorkDir, err)
	}

	remote := strings.TrimSpace(string(out))
	if slug, ok := ParseRemoteURL(remote); ok {
		return slug, nil
	}
	return "", fmt.Errorf("cannot parse owner/repo from git remote %q", remote)
}

// ParseRemoteURL extracts an owner/repo slug from a git remote URL.
func ParseRemoteURL(remote string) (string, bool) {
	for _, p := range remotePatterns {
		if m := p.FindStringSubmatch(remote); m != nil {
			return m[1], true
		}
	}
	return "", false
}
