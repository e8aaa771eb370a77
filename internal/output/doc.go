// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders selected records in the format chosen with --output.
//
// Formats:
//
//   - ltsv : the record re-encoded with the ltsv codec (default)
//   - json : one JSON object per line, keys in record order
//   - yaml : one YAML document per record
//
// Key order is kept in every format and duplicate keys are never merged.
package output
