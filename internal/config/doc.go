// Package config handles loading and validation of repodash configuration.
//
// Configuration is read from ~/.config/repodash/config.toml (or the file named
// by REPODASH_CONFIG) with environment variable overrides.
//
// # Configuration Sources (highest priority first)
//
//   - Command line flags (applied by the CLI after loading)
//   - REPODASH_ROOT / REPODASH_PORT env vars
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - root_dir: directory scanned for repositories (default: working directory)
//   - host, port: listen address of the dashboard server
//   - static_dir: directory served for the dashboard page
//   - exclude: directory names never listed or descended into
//   - fetch: refresh remotes before each status query (default: true)
//   - branch_concurrency: parallel per-branch upstream queries (default: 8)
//   - theme: CLI table colors (default, none, dracula, nord)
//
// # Keepalive
//
//	[keepalive]
//	interval = "1s"
//	timeout = "5s"   # "0s" disables automatic shutdown
//
// # Path Validation
//
// Directory paths must be absolute or start with ~ (no relative paths like "."
// or "..") to avoid confusion about the working directory.
package config
