package config

import (
	"runtime"

	"github.com/agbru/bigcalc/internal/allocator"
)

// ApplyAdaptiveDefaults fills the fields left at zero with values derived
// from the host: one job per CPU, and a pool pre-warm count sized for the
// number of programs that may run at once.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Jobs == 0 {
		cfg.Jobs = runtime.NumCPU()
	}
	if cfg.Prewarm == 0 && cfg.Alloc == allocator.KindPool {
		cfg.Prewarm = allocator.PrewarmCount(min(cfg.Jobs, max(len(cfg.Exprs), 1)))
	}
	return cfg
}
