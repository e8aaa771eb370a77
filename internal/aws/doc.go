// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws reads LTSV input from S3 objects named with s3://bucket/key.
package aws
