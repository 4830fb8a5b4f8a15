// Package config loads mediare settings from mediare.toml, a .env file and
// MEDIARE_* environment variables, in increasing order of precedence.
package config
