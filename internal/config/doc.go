// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for ltsvgrep's user
// configuration. The configuration is an optional YAML document located in
// the user's configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/ltsvgrep.yaml or $HOME/.config/ltsvgrep.yaml
//   - Windows: %APPDATA%/ltsvgrep.yaml
//
// LTSVGREP_CFG_FILE overrides the location. Top-level keys named after flags
// (whitelist, blacklist, output, ...) supply flag defaults, "sets" holds named
// argument lists expanded by @name, and "colors.key" sets the key color.
package config
