// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/ltsvgrep/internal/config"
	"github.com/tfctl/ltsvgrep/internal/meta"
)

// InitApp builds the ltsvgrep root command. Flags fall back to environment
// variables and then to the config file, when one was found.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	meta := meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
	}

	app := &cli.Command{
		Name:      "ltsvgrep",
		Usage:     "filter LTSV records by a key=value pattern",
		UsageText: "ltsvgrep [options] <key=value>",
		Metadata:  map[string]any{"meta": meta},
		Flags:     NewFlags(cfg.Source),
		Action:    grepCommandAction,
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		},
	}

	// Make sure flags are sorted for the --help text.
	sort.Slice(app.Flags, func(i, j int) bool {
		return app.Flags[i].Names()[0] < app.Flags[j].Names()[0]
	})

	return app, nil
}
