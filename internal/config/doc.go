// Package config loads, normalizes, and validates mercedes configuration.
//
// It supplies repository defaults, expands tilde paths, and reads an
// optional TOML file. Everything works with no file present: the defaults
// describe the conventional ~/.m2 layout and one-minute windows.
package config
