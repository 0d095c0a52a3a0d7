// Package config loads settings shared by the audiopaint commands with viper
// and sets up zerolog console logging.
package config
