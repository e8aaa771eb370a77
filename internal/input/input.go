// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package input

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tfctl/ltsvgrep/internal/aws"
	"github.com/tfctl/ltsvgrep/internal/cacheutil"
	"github.com/tfctl/ltsvgrep/internal/log"
)

// Stdin names the standard input source.
const Stdin = "-"

// cacheSubdir holds downloaded S3 objects beneath the cache base.
const cacheSubdir = "s3"

// stdin is swapped in tests.
var stdin io.Reader = os.Stdin

// openObject is swapped in tests.
var openObject = aws.OpenObject

type options struct {
	aws        []aws.Option
	cacheHours int
}

// Option configures Open.
type Option func(*options)

// WithAWS passes opts through to the S3 client for s3:// sources.
func WithAWS(opts ...aws.Option) Option {
	return func(o *options) { o.aws = append(o.aws, opts...) }
}

// WithCache keeps downloaded s3:// objects in the local cache for hours.
// hours <= 0 disables the cache.
func WithCache(hours int) Option {
	return func(o *options) { o.cacheHours = hours }
}

// Open returns a reader for spec. Closing the reader returned for stdin does
// not close os.Stdin.
func Open(ctx context.Context, spec string, opts ...Option) (io.ReadCloser, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case spec == "" || spec == Stdin:
		log.Debugf("input from stdin")
		return io.NopCloser(stdin), nil
	case aws.IsS3URL(spec):
		log.Debugf("input from s3: %s", spec)
		if o.cacheHours > 0 && cacheUsable() {
			return openCachedObject(ctx, spec, o)
		}
		return openObject(ctx, spec, o.aws...)
	}

	info, err := os.Stat(spec)
	if err != nil {
		return nil, fmt.Errorf("input file does not exist: %s", spec)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("input cannot be a directory: %s", spec)
	}

	f, err := os.Open(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	log.Debugf("input from file: %s", spec)

	return f, nil
}

func cacheUsable() bool {
	_, ok := cacheutil.Dir()
	return ok && cacheutil.Enabled()
}

// openCachedObject serves spec from the cache, downloading it into the cache
// first on a miss. Expired entries are purged before the lookup.
func openCachedObject(ctx context.Context, spec string, o options) (io.ReadCloser, error) {
	if err := cacheutil.Purge(o.cacheHours); err != nil {
		log.WithError(err).Warnf("cache purge failed")
	}

	subdirs := []string{cacheSubdir}
	if f, ok := cacheutil.Open(subdirs, spec); ok {
		return f, nil
	}

	body, err := openObject(ctx, spec, o.aws...)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	p, err := cacheutil.Store(subdirs, spec, body)
	if err != nil {
		return nil, fmt.Errorf("failed to cache %s: %w", spec, err)
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open cached %s: %w", spec, err)
	}
	return f, nil
}
