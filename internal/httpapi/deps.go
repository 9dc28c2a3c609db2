package httpapi

import (
	"context"
	"sync/atomic"

	"github.com/phuslu/log"

	"jobview-engine/internal/config"
	"jobview-engine/internal/snapshot"
)

type Deps struct {
	Snapshot *snapshot.Store

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	Logger *log.Logger

	// Admin guard; nil or an error disables the admin endpoints.
	AdminToken func() (string, error)

	// Shutdown stops the server; inject for testability.
	Shutdown func(ctx context.Context) error
}

func (d Deps) config() config.Config {
	if d.CfgVal == nil {
		return config.Default()
	}
	if cfg, ok := d.CfgVal.Load().(config.Config); ok {
		return cfg
	}
	return config.Default()
}
