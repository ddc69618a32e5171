// Package config loads tool configuration from environment variables and
// an optional YAML file, and resolves the directory layout used for input
// data, generated reports and logs.
package config
