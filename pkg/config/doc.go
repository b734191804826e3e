// Package config handles configuration management for codeplex.
// It layers the embedded defaults, the user's TOML file, CODEPLEX_
// environment variables and explicit overrides, in that order.
package config
