// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters decides which LTSV records are emitted and which of their
// fields survive.
//
// Matching:
//
// A Pattern is a single key=value pair, written exactly like an LTSV field and
// decoded with the ltsv package. Only the first decoded pair is kept. A record
// matches when at least one of its pairs has a key and value byte-for-byte
// equal to the pattern's. There is no prefix, substring, case-insensitive or
// numeric matching.
//
// Examples:
//
//   - "status=200" : matches records carrying status=200
//   - 'path=/a\=b' : matches path=/a=b (the escaped = belongs to the value)
//   - "" : matches records carrying a pair with an empty key and value
//
// Selection:
//
// A Selector is built from the --whitelist and --blacklist option strings.
// Both are comma-separated key names split with SplitCommas. An empty option
// string means no list at all, so an empty whitelist does not restrict the
// output. When a key is on both lists the blacklist wins. Surviving pairs keep
// their relative order.
package filters
