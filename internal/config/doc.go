// Package config loads runtime configuration of the CLI shell from multiple
// sources (YAML files, environment variables, CLI flags) with precedence:
// CLI flags > YAML config > Environment variables > Defaults. It configures
// the shell around the store; the store's own content is loaded from
// properties sources by the settings package and is not overlaid from here.
package config
