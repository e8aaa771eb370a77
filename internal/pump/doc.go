// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package pump drives the read, decode, match, select and write loop over an
// input stream. Processing is synchronous and strictly one line at a time.
//
// Read and write failures end the run with a *StreamReadError or a
// *StreamWriteError. Per-line decode faults never end the run: the line is
// logged and skipped.
package pump
