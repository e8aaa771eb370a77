// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/ltsvgrep/internal/aws"
	"github.com/tfctl/ltsvgrep/internal/filters"
	"github.com/tfctl/ltsvgrep/internal/input"
	"github.com/tfctl/ltsvgrep/internal/log"
	"github.com/tfctl/ltsvgrep/internal/ltsv"
	"github.com/tfctl/ltsvgrep/internal/output"
	"github.com/tfctl/ltsvgrep/internal/pump"
	"github.com/tfctl/ltsvgrep/internal/version"
)

// ErrUsage marks errors caused by how ltsvgrep was invoked rather than by the
// data it was asked to filter.
var ErrUsage = errors.New("usage error")

// grepCommandAction is the root command action. It filters the input named by
// --input with the single positional pattern and writes selected records to
// the command writer.
func grepCommandAction(ctx context.Context, cmd *cli.Command) error {
	if m := GetMeta(cmd); m.Config.Source != "" {
		log.Debugf("config: %s", m.Config.Source)
	}

	if cmd.Bool("version") {
		_, err := fmt.Fprintln(commandWriter(cmd), version.Version)
		return err
	}

	if cmd.Args().Len() != 1 {
		return fmt.Errorf("%w: expected exactly one key=value pattern, got %d", ErrUsage, cmd.Args().Len())
	}

	pattern, err := filters.ParsePattern(cmd.Args().First())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	log.Debugf("pattern: %s", pattern)

	selector := filters.NewSelector(cmd.String("whitelist"), cmd.String("blacklist"))

	w := commandWriter(cmd)
	writer, err := output.NewRecordWriter(w, cmd.String("output"), output.WithColor(cmd.Bool("color")))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	src := cmd.String("input")
	r, err := input.Open(ctx, src,
		input.WithAWS(awsOptions(cmd)...),
		input.WithCache(cmd.Int("cache-hours")),
	)
	if err != nil {
		return err
	}
	defer r.Close()

	p := &pump.Pump{
		Pattern:      pattern,
		Selector:     selector,
		Decoder:      ltsv.Decoder{Strict: cmd.Bool("strict")},
		Writer:       writer,
		LineBuffered: lineBuffered(cmd, w),
	}

	stats, err := p.Run(r)
	logSummary(src, stats)

	return err
}

// awsOptions maps the S3 flags onto aws options. Unset flags are left to the
// SDK's own resolution.
func awsOptions(cmd *cli.Command) (opts []aws.Option) {
	if v := cmd.String("profile"); v != "" {
		opts = append(opts, aws.WithProfile(v))
	}
	if v := cmd.String("region"); v != "" {
		opts = append(opts, aws.WithRegion(v))
	}
	if v := cmd.String("endpoint"); v != "" {
		opts = append(opts, aws.WithEndpoint(v))
	}
	return
}

func commandWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// lineBuffered honors an explicit --line-buffered and otherwise turns line
// buffering on when w is a terminal.
func lineBuffered(cmd *cli.Command, w io.Writer) bool {
	if cmd.IsSet("line-buffered") {
		return cmd.Bool("line-buffered")
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func logSummary(src string, stats pump.Stats) {
	log.Infof("%s: %s lines (%s), %s matched, %s emitted, %s skipped",
		src,
		humanize.Comma(int64(stats.Lines)),
		humanize.Bytes(stats.Bytes),
		humanize.Comma(int64(stats.Matched)),
		humanize.Comma(int64(stats.Emitted)),
		humanize.Comma(int64(stats.Skipped)),
	)
}
