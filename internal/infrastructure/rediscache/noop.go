package rediscache

import (
	"context"

	"github.com/sayanm085/shopnex-api/internal/application/dto"
)

// Noop is the cache used when Redis is not configured. Every lookup misses and
// every write is discarded.
type Noop struct{}

func (Noop) Get(context.Context, string) (*dto.BarcodeLookupResponse, error) { return nil, nil }

func (Noop) Set(context.Context, string, *dto.BarcodeLookupResponse) error { return nil }

func (Noop) Invalidate(context.Context, ...string) {}
