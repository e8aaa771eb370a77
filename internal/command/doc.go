// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the ltsvgrep root command. It wires flags,
// validators and the grep action that drives the line pump.
package command
