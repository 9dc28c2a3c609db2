package main

import (
	"os"
	"path/filepath"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"jobview-engine/internal/config"
	"jobview-engine/internal/logging"
	"jobview-engine/internal/snapshot"
)

const dataDirEnv = "JOBVIEW_DATA_DIR"

type rootOptions struct {
	dataDir    string
	configPath string
	dataFile   string
	logLevel   string
	logFormat  string
}

// env is what every command starts from.
type env struct {
	cfg      config.Config
	cfgPath  string
	dataDir  string
	dataFile string
	logger   *log.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "jobview",
		Short:         "Browse, filter and chart a CSV of job postings",
		Long:          "jobview loads a pre-generated CSV of scraped job postings, filters them by keyword, company, city and salary, and renders the listings and their aggregate charts on the command line or over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultDir := os.Getenv(dataDirEnv)
	if defaultDir == "" {
		defaultDir = "."
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.dataDir, "data-dir", defaultDir, "Directory holding config.yml and the listings file (env "+dataDirEnv+")")
	pf.StringVarP(&opts.configPath, "config", "c", "", "Config file (default <data-dir>/config.yml, created on first run)")
	pf.StringVarP(&opts.dataFile, "data", "d", "", "Listings CSV (overrides app.data_file)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level (overrides log.level)")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log format auto|console|json (overrides log.format)")

	cmd.AddCommand(
		newServeCmd(opts),
		newListCmd(opts),
		newStatsCmd(opts),
		newReportCmd(opts),
		newExportCmd(opts),
		newTokenCmd(),
	)
	return cmd
}

// setup resolves the config file, the listings path and the logger.
func (o *rootOptions) setup(cmd *cobra.Command) (*env, error) {
	if err := os.MkdirAll(o.dataDir, 0o755); err != nil {
		return nil, err
	}

	cfgPath := o.configPath
	if cfgPath == "" {
		p, err := config.EnsureUserConfig(o.dataDir, filepath.Join("config", "config.yml"))
		if err != nil {
			return nil, err
		}
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	dataFile := o.dataFile
	if dataFile == "" {
		dataFile = config.ResolveDataFile(cfg, o.dataDir)
	}

	return &env{
		cfg:      cfg,
		cfgPath:  cfgPath,
		dataDir:  o.dataDir,
		dataFile: dataFile,
		logger:   logging.NewWithWriter(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr()),
	}, nil
}

func (e *env) openSnapshot() (*snapshot.Store, error) {
	return snapshot.Open(e.dataFile, e.logger)
}
