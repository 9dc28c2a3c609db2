// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Host          string `yaml:"host" json:"host"`
		Port          int    `yaml:"port" json:"port"`
		DataFile      string `yaml:"data_file" json:"data_file"`
		ReloadSeconds int    `yaml:"reload_seconds" json:"reload_seconds"`
	} `yaml:"app" json:"app"`

	Log struct {
		Level  string `yaml:"level" json:"level"`
		Format string `yaml:"format" json:"format"`
	} `yaml:"log" json:"log"`

	HTTP struct {
		RatePerSec float64 `yaml:"rate_per_sec" json:"rate_per_sec"`
		Burst      int     `yaml:"burst" json:"burst"`
	} `yaml:"http" json:"http"`

	Aggregates struct {
		Scope         string   `yaml:"scope" json:"scope"` // all | filtered
		TopN          int      `yaml:"top_n" json:"top_n"`
		HistogramBins int      `yaml:"histogram_bins" json:"histogram_bins"`
		SkillTerms    int      `yaml:"skill_terms" json:"skill_terms"`
		Stopwords     []string `yaml:"stopwords" json:"stopwords"`
	} `yaml:"aggregates" json:"aggregates"`

	Listing struct {
		PageTitle string `yaml:"page_title" json:"page_title"`
		Intro     string `yaml:"intro" json:"intro"`
	} `yaml:"listing" json:"listing"`
}

// Default is the configuration written on first run when no default file
// ships next to the binary.
func Default() Config {
	var cfg Config
	cfg.App.Host = "127.0.0.1"
	cfg.App.Port = 38471
	cfg.App.DataFile = "germany_data_jobs_clean.csv"
	cfg.Log.Level = "info"
	cfg.Log.Format = "auto"
	cfg.HTTP.RatePerSec = 20
	cfg.HTTP.Burst = 40
	cfg.Aggregates.Scope = "all"
	cfg.Aggregates.TopN = 10
	cfg.Aggregates.HistogramBins = 20
	cfg.Aggregates.SkillTerms = 50
	cfg.Listing.PageTitle = "Data Jobs in Germany"
	cfg.Listing.Intro = "Search and explore recent data-related job postings across Germany. Click 'Apply Now' to visit the job page."
	return cfg
}

// Load reads path over the defaults, so keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
