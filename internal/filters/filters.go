// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"

	"github.com/apex/log"

	"github.com/tfctl/ltsvgrep/internal/ltsv"
)

// Pattern is the single key=value equality a record must carry to be emitted.
type Pattern struct {
	Key   string `yaml:"key" json:"Key"`
	Value string `yaml:"value" json:"Value"`
}

// ParsePattern decodes spec as one LTSV line and keeps its first pair. Any
// further pairs are discarded. An empty spec yields the empty pattern, which
// is not rejected.
func ParsePattern(spec string) (Pattern, error) {
	record, err := ltsv.Decode(spec)
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid pattern %q: %w", spec, err)
	}

	if len(record) > 1 {
		log.Debugf("pattern has %d pairs, only the first is used: %q", len(record), spec)
	}

	return Pattern{Key: record[0].Key, Value: record[0].Value}, nil
}

// Match returns true if r carries a pair whose key and value both equal the
// pattern's. Comparison is exact and case-sensitive.
func (p Pattern) Match(r ltsv.Record) bool {
	for _, pair := range r {
		if pair.Key == p.Key && pair.Value == p.Value {
			return true
		}
	}
	return false
}

// String returns the pattern in its encoded form, without the trailing tab.
func (p Pattern) String() string {
	return ltsv.Escape(p.Key) + "=" + ltsv.Escape(p.Value)
}
