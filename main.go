// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/ltsvgrep/internal/command"
	"github.com/tfctl/ltsvgrep/internal/config"
	"github.com/tfctl/ltsvgrep/internal/log"
	"github.com/tfctl/ltsvgrep/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v among the leading flags and returns
// whether it was handled. Scanning stops at the first positional argument, and
// the value of a flag such as -w is never taken for a flag, so -w -v keeps a
// key named -v.
func handleVersion(args []string) bool {
	for i := 1; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--version" || a == "-v":
			fmt.Println(version.Version)
			return true
		case a == "--" || !strings.HasPrefix(a, "-") || a == "-":
			return false
		case !strings.Contains(a, "=") && command.FlagTakesValue(strings.TrimLeft(a, "-")):
			i++
		}
	}
	return false
}

// handleNakedCommand appends --help if no arguments are provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		if errors.Is(err, command.ErrUsage) {
			return 1
		}
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)
	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	return initAndRunApp(args)
}

// processSetOnly expands every @name argument that names a config set in
// place. An argument is only a set reference when it has no '=' and
// sets.<name> exists, so patterns such as @tag=x pass through untouched.
func processSetOnly(args []string) []string {
	if len(args) == 0 {
		return args
	}

	out := []string{args[0]}
	for _, a := range args[1:] {
		name, ok := strings.CutPrefix(a, "@")
		if !ok || name == "" || strings.Contains(name, "=") {
			out = append(out, a)
			continue
		}

		entries, err := config.GetStringSlice("sets." + name)
		if err != nil {
			log.Debugf("no set %q: %v", name, err)
			out = append(out, a)
			continue
		}

		out = injectConfigSet(out, entries, len(out))
	}

	return out
}

// injectConfigSet splits each entry on whitespace and inserts the resulting
// fields into args at insertIdx.
func injectConfigSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	tail := append([]string{}, args[insertIdx:]...)
	return append(append(args[:insertIdx], expanded...), tail...)
}
