package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/ltsvgrep/internal/command"
)

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
	Env         string
}

type Example struct {
	Command     string
	Description string
}

type TemplateData struct {
	Flags    []Flag
	Examples []Example
	Date     string
	Version  string
}

type Outputs struct {
	Template string
	Path     string
}

var examples = []Example{
	{Command: "ltsvgrep status=500 < access.ltsv", Description: "Print every record whose status is 500."},
	{Command: "ltsvgrep -w time,path host=web1 < access.ltsv", Description: "Print only the time and path of records from web1."},
	{Command: "ltsvgrep -b ua -o json -i access.ltsv method=POST", Description: "Emit POST records as JSON without the user agent."},
	{Command: "ltsvgrep -i s3://logs/2026/10/19.ltsv --cache-hours 12 status=404", Description: "Filter an S3 object, keeping a local copy for 12 hours."},
	{Command: "ltsvgrep @errors", Description: "Expand the errors set from the config file."},
}

const markdown = `# ltsvgrep

Filter LTSV records by a key=value pattern.

## Usage

    ltsvgrep [options] <key=value>

## Options
{{range .Flags}}
- ` + "`{{.Syntax}}`" + `: {{.Description}}{{if .Default}} (default: {{.Default}}){{end}}{{if .Env}} [${{.Env}}]{{end}}{{end}}

## Examples
{{range .Examples}}
{{.Description}}

    {{.Command}}
{{end}}
---
Version {{.Version}}, generated {{.Date}}.
`

const manpage = `.TH LTSVGREP 1 "{{.Date}}" "ltsvgrep {{.Version}}"
.SH NAME
ltsvgrep \- filter LTSV records by a key=value pattern
.SH SYNOPSIS
.B ltsvgrep
[options] <key=value>
.SH OPTIONS
{{range .Flags}}.TP
.B {{.Syntax}}
{{.Description}}{{if .Default}} Default: {{.Default}}.{{end}}
{{end}}.SH EXAMPLES
{{range .Examples}}.TP
.B {{.Command}}
{{.Description}}
{{end}}`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs dir>")
		os.Exit(1)
	}
	docs := os.Args[1]

	metadata := TemplateData{
		Flags:    collectFlags(command.NewFlags("")),
		Examples: examples,
		Date:     time.Now().Format("January 2, 2006"),
		Version:  getVersion(),
	}

	types := []Outputs{
		{Template: markdown, Path: filepath.Join(docs, "ltsvgrep.md")},
		{Template: manpage, Path: filepath.Join(docs, "man", "share", "man1", "ltsvgrep.1")},
	}

	for _, t := range types {
		if err := os.MkdirAll(filepath.Dir(t.Path), 0755); err != nil {
			panic(err)
		}

		file, err := os.Create(t.Path)
		if err != nil {
			panic(err)
		}
		fmt.Println("Generating", t.Path)

		tmpl := template.Must(template.New(filepath.Base(t.Path)).Parse(t.Template))
		if err := tmpl.Execute(file, metadata); err != nil {
			panic(err)
		}

		file.Close()
	}
}

// collectFlags turns the live flag set into template rows, sorted the same
// way --help sorts them.
func collectFlags(flags []cli.Flag) (out []Flag) {
	for _, f := range flags {
		names := f.Names()
		var syntax []string
		for _, n := range names {
			if len(n) == 1 {
				syntax = append(syntax, "-"+n)
			} else {
				syntax = append(syntax, "--"+n)
			}
		}

		row := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
		if df, ok := f.(cli.DocGenerationFlag); ok {
			row.Description = df.GetUsage()
			if df.TakesValue() {
				row.Syntax += " <value>"
				row.Default = df.GetValue()
			}
			if envs := df.GetEnvVars(); len(envs) > 0 {
				row.Env = envs[0]
			}
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
