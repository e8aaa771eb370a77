// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/ltsvgrep/internal/input"
	"github.com/tfctl/ltsvgrep/internal/output"
)

// NewFlags returns the ltsvgrep flag set. When cfgPath is not empty, string
// flags also read their default from the top-level key of the same name in
// that YAML file.
func NewFlags(cfgPath string) (flags []cli.Flag) {
	stringFlags := []*cli.StringFlag{
		{
			Name:    "whitelist",
			Aliases: []string{"w"},
			Usage:   "comma-separated list of keys to emit",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("LTSVGREP_WHITELIST"),
			),
		},
		{
			Name:    "blacklist",
			Aliases: []string{"b"},
			Usage:   "comma-separated list of keys to drop",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("LTSVGREP_BLACKLIST"),
			),
		},
		{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   output.FormatLTSV,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("LTSVGREP_OUTPUT"),
			),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "record source: - for stdin, a file, or s3://bucket/key",
			Value:   input.Stdin,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("LTSVGREP_INPUT"),
			),
		},
		{
			Name:  "profile",
			Usage: "AWS profile for s3:// input. Overrides AWS_PROFILE",
		},
		{
			Name:  "region",
			Usage: "AWS region for s3:// input",
		},
		{
			Name:  "endpoint",
			Usage: "S3-compatible endpoint URL for s3:// input",
		},
	}

	for _, flag := range stringFlags {
		if cfgPath != "" {
			flag = ValueChainFlagFromConfigFile(cfgPath, flag)
		}
		flags = append(flags, flag)
	}

	flags = append(flags,
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored keys with ltsv output",
			Value:   false,
		},
		&cli.IntFlag{
			Name:  "cache-hours",
			Usage: "keep s3:// objects in the local cache for this many hours. 0 disables",
			Value: 0,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("LTSVGREP_CACHE_HOURS"),
			),
		},
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "skip lines with misplaced reserved characters instead of dropping the characters",
			HideDefault: true,
		},
		&cli.BoolFlag{
			Name:    "line-buffered",
			Aliases: []string{"l"},
			Usage:   "flush after every record. Default when stdout is a terminal",
		},
		&cli.BoolFlag{
			Name:        "version",
			Aliases:     []string{"v"},
			Usage:       "ltsvgrep version info",
			HideDefault: true,
		},
	)

	return
}

// ValueChainFlagFromConfigFile adds the config file as the last source in the
// given flag's Sources chain.
func ValueChainFlagFromConfigFile(path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// FlagTakesValue reports whether name (without dashes) is a flag that consumes
// the next argument.
func FlagTakesValue(name string) bool {
	for _, f := range NewFlags("") {
		for _, n := range f.Names() {
			if n != name {
				continue
			}
			_, isBool := f.(*cli.BoolFlag)
			return !isBool
		}
	}
	return false
}
