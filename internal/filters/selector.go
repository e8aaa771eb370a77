// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"github.com/apex/log"

	"github.com/tfctl/ltsvgrep/internal/ltsv"
)

// KeySet is a set of LTSV keys used for membership tests.
type KeySet map[string]struct{}

// NewKeySet returns a set holding every key in keys.
func NewKeySet(keys ...string) KeySet {
	set := make(KeySet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// Has reports whether key is in the set.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// SplitCommas splits s on every literal comma. There is no escaping and no
// trimming, and an empty s yields a single empty element. Callers that treat
// "" as "no list" must test the input string, not the result length.
func SplitCommas(s string) []string {
	values := []string{""}
	for _, chr := range s {
		if chr == ',' {
			values = append(values, "")
			continue
		}
		values[len(values)-1] += string(chr)
	}
	return values
}

// Selector projects a record onto its whitelisted, non-blacklisted keys.
type Selector struct {
	Whitelist KeySet
	Blacklist KeySet
}

// NewSelector builds a Selector from the raw --whitelist and --blacklist
// option values. An empty string disables the corresponding list.
func NewSelector(whitelist, blacklist string) Selector {
	var sel Selector

	if whitelist != "" {
		sel.Whitelist = NewKeySet(SplitCommas(whitelist)...)
	}

	if blacklist != "" {
		sel.Blacklist = NewKeySet(SplitCommas(blacklist)...)
	}

	log.Debugf("selector built: whitelist=%d blacklist=%d", len(sel.Whitelist), len(sel.Blacklist))

	return sel
}

// Keep reports whether a pair with the given key survives selection. The
// blacklist always wins over the whitelist.
func (s Selector) Keep(key string) bool {
	if len(s.Whitelist) > 0 && !s.Whitelist.Has(key) {
		return false
	}
	return !s.Blacklist.Has(key)
}

// Select returns the pairs of r that survive selection, in their original
// order. r is not modified.
func (s Selector) Select(r ltsv.Record) ltsv.Record {
	//nolint:prealloc // Most lines keep only a few fields.
	var selected ltsv.Record
	for _, pair := range r {
		if s.Keep(pair.Key) {
			selected = append(selected, pair)
		}
	}
	return selected
}
