package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// MaxChartItems caps top_n, histogram_bins and skill_terms.
const MaxChartItems = 1000

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if strings.TrimSpace(cfg.App.DataFile) == "" {
		errs = append(errs, "app.data_file is required")
	}
	if cfg.App.ReloadSeconds < 0 {
		errs = append(errs, "app.reload_seconds must be >= 0")
	}
	if cfg.HTTP.RatePerSec < 0 {
		errs = append(errs, "http.rate_per_sec must be >= 0")
	}
	if cfg.HTTP.RatePerSec > 0 && cfg.HTTP.Burst <= 0 {
		errs = append(errs, "http.burst must be > 0 when http.rate_per_sec is set")
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Aggregates.Scope)) {
	case "", "all", "filtered":
	default:
		errs = append(errs, fmt.Sprintf("aggregates.scope must be all or filtered (got %q)", cfg.Aggregates.Scope))
	}
	if cfg.Aggregates.TopN < 0 || cfg.Aggregates.TopN > MaxChartItems {
		errs = append(errs, fmt.Sprintf("aggregates.top_n must be 0..%d", MaxChartItems))
	}
	if cfg.Aggregates.HistogramBins < 0 || cfg.Aggregates.HistogramBins > MaxChartItems {
		errs = append(errs, fmt.Sprintf("aggregates.histogram_bins must be 0..%d", MaxChartItems))
	}
	if cfg.Aggregates.SkillTerms < 0 || cfg.Aggregates.SkillTerms > MaxChartItems {
		errs = append(errs, fmt.Sprintf("aggregates.skill_terms must be 0..%d", MaxChartItems))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Log.Format)) {
	case "", "auto", "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be auto, console or json (got %q)", cfg.Log.Format))
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + joinLines(errs))
	}
	return nil
}

// SaveAtomic validates cfg and replaces path with it, keeping the previous
// file as path.bak. Concurrent writers are serialized through path.lock.
func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock config: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n- ")
}
