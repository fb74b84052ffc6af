package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet reports whether the flag was given on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny reports whether any of the aliased flags was given.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an environment key (without EnvPrefix) to the flags it
// shadows and the function applying its value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// envOverrides lists every supported BIGCALC_* variable. Unparseable values
// are ignored.
var envOverrides = []envOverride{
	{"EXPR", []string{"e", "expr"}, func(c *AppConfig, v string) {
		if len(c.Exprs) == 0 {
			for _, p := range strings.Split(v, ";") {
				if p = strings.TrimSpace(p); p != "" {
					c.Exprs = append(c.Exprs, p)
				}
			}
		}
	}},
	{"ALLOC", []string{"alloc"}, func(c *AppConfig, v string) {
		c.Alloc = strings.ToLower(v)
	}},
	{"ARENA_WORDS", []string{"arena-words"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.ArenaWords = parsed
		}
	}},
	{"LIMIT_WORDS", []string{"limit-words"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.LimitWords = parsed
		}
	}},
	{"PREWARM", []string{"prewarm"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Prewarm = parsed
		}
	}},
	{"JOBS", []string{"jobs"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Jobs = parsed
		}
	}},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},
	{"HEX", []string{"hex"}, func(c *AppConfig, v string) {
		c.HexOutput = parseBoolEnv(v, c.HexOutput)
	}},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) {
		c.TUI = parseBoolEnv(v, c.TUI)
	}},
	{"METRICS", []string{"metrics"}, func(c *AppConfig, v string) {
		c.Metrics = parseBoolEnv(v, c.Metrics)
	}},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) {
		c.MetricsAddr = v
	}},
	{"LEAK_CHECK", []string{"leak-check"}, func(c *AppConfig, v string) {
		c.LeakCheck = parseBoolEnv(v, c.LeakCheck)
	}},
	{"VERBOSE", []string{"v", "verbose"}, func(c *AppConfig, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
	{"QUIET", []string{"q", "quiet"}, func(c *AppConfig, v string) {
		c.Quiet = parseBoolEnv(v, c.Quiet)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
}

// parseBoolEnv accepts true/1/yes and false/0/no, case-insensitively, and
// returns defaultVal for anything else.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides fills fields whose flags were not given on the command
// line from the environment.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
