// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/tfctl/ltsvgrep/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments
// after @set expansion, the loaded configuration and the root context.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
}
