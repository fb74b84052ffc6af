// Package config parses bigcalc's command line and environment into an
// AppConfig.
//
// Resolution order, highest priority first:
//  1. command-line flags
//  2. BIGCALC_* environment variables
//  3. adaptive defaults derived from the host (ApplyAdaptiveDefaults)
//  4. static defaults
package config
