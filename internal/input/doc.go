// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package input opens the record source named by --input: "-" (or empty) for
// stdin, s3://bucket/key for an S3 object, anything else for a local file.
// S3 objects can be kept in the local cache with WithCache.
package input
