// Package config loads motostats settings.
//
// # Resolution Order
//
// Settings are layered, each layer overriding the one before:
//
//  1. Built-in defaults (Default)
//  2. The TOML file, ~/.config/motostats/config.toml unless a path is given
//  3. MOTOSTATS_* environment variables
//  4. Command-line flags, applied by the caller with Config.Apply
//
// A missing config file is not an error. Empty or whitespace-only values in the
// file fall back to the previous layer. LoadDotEnv can seed the environment
// from a .env file first; it never replaces variables that are already set.
//
// # File Format
//
//	api_url = "http://127.0.0.1:8000/api"
//	timeout = "10s"
//	log_file = "~/.local/share/motostats/motostats.log"
//	log_level = "info"
//	listen = "127.0.0.1:8080"
//	request_ids = false
//	show_error_detail = false
//
// Timeouts accept Go duration strings or a bare number of seconds. Paths
// starting with ~ are expanded against the user's home directory.
//
// # Environment
//
//   - MOTOSTATS_API_URL: backend base URL
//   - MOTOSTATS_TIMEOUT: request timeout ceiling
//   - MOTOSTATS_LOG_LEVEL: debug, info, warn or error
//   - MOTOSTATS_LISTEN: bind address for the HTML front end
package config
