package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg together with every
// problem found, so a UI can show them all at once.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, key)
		}
		return ys
	}

	out.Aggregates.Stopwords = trimList(out.Aggregates.Stopwords)
	out.Aggregates.Scope = strings.ToLower(strings.TrimSpace(out.Aggregates.Scope))
	if out.Aggregates.Scope == "" {
		out.Aggregates.Scope = "all"
	}
	out.Log.Level = strings.ToLower(strings.TrimSpace(out.Log.Level))
	out.Log.Format = strings.ToLower(strings.TrimSpace(out.Log.Format))
	out.App.DataFile = strings.TrimSpace(out.App.DataFile)

	// ---- Validation rules ----

	if err := Validate(out); err != nil {
		for _, line := range strings.Split(strings.TrimPrefix(err.Error(), "config validation failed:\n- "), "\n- ") {
			res.addErr("%s", line)
		}
	}

	switch out.Log.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		res.addWarn("log.level %q is not recognized; info will be used.", out.Log.Level)
	}

	if out.App.ReloadSeconds > 0 && out.App.ReloadSeconds < 5 {
		res.addWarn("app.reload_seconds is very low (%d); the listings file is checked on every tick.", out.App.ReloadSeconds)
	}
	if out.HTTP.RatePerSec == 0 {
		res.addWarn("http.rate_per_sec is 0; requests are not rate limited.")
	}
	if out.Aggregates.TopN == 0 {
		res.addWarn("aggregates.top_n is 0; the city and company charts will be empty.")
	}
	if out.Aggregates.TopN > 100 {
		res.addWarn("aggregates.top_n is %d; bar charts will be hard to read.", out.Aggregates.TopN)
	}
	if host := strings.TrimSpace(out.App.Host); host != "" && host != "127.0.0.1" && host != "localhost" && host != "::1" {
		res.addWarn("app.host %q exposes the listing server beyond this machine.", host)
	}

	return out, res
}
