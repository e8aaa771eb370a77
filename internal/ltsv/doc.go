// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package ltsv decodes and encodes Labeled Tab-Separated Values lines.
//
// A line is a tab-separated list of key=value fields:
//
//	time=10<TAB>status=200<TAB>host=a.com
//
// Within a key or value, a backslash escapes exactly the next character. The
// encoder escapes tab, line feed and backslash. It does not escape '=', so a
// key containing a literal '=' does not survive an encode/decode round trip.
//
// Decoding is lenient by default: a reserved character found where the decoder
// does not expect it (an unescaped '=' in a value, an unescaped tab or line
// feed in a key) is dropped. A Decoder with Strict set reports a
// *MalformedError instead. Data following an unescaped line feed is always
// reported as a *TerminatedError.
package ltsv
