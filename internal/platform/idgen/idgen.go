// Package idgen generates unique string identifiers for new records.
//
// A Generator picks its strategy once, at construction: it probes the
// configured entropy source by drawing a random UUID. If the probe succeeds
// every identifier is a canonical UUIDv4. Otherwise it falls back to a
// timestamp plus a numeric suffix, which needs nothing but the clock.
package idgen

import (
	"crypto/rand"
	"fmt"
	"io"
	mrand "math/rand/v2"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Strategy names the identifier scheme a Generator settled on.
type Strategy string

const (
	// StrategyUUID issues random (version 4) UUIDs.
	StrategyUUID Strategy = "uuid"

	// StrategyTimestamp issues "<unix millis><suffix>" identifiers.
	StrategyTimestamp Strategy = "timestamp"
)

// suffixRange bounds the random part of a fallback identifier.
const suffixRange = 1_000_000

// Generator issues identifiers. It is safe for concurrent use.
type Generator struct {
	entropy  io.Reader
	strategy Strategy
	now      func() time.Time
	seq      atomic.Uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithEntropy replaces crypto/rand as the source for UUIDs.
func WithEntropy(r io.Reader) Option {
	return func(g *Generator) {
		g.entropy = r
	}
}

// WithClock replaces time.Now for fallback identifiers.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a Generator and settles its strategy.
func New(opts ...Option) *Generator {
	g := &Generator{
		entropy: rand.Reader,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	g.strategy = StrategyTimestamp
	if g.entropy != nil {
		if _, err := uuid.NewRandomFromReader(g.entropy); err == nil {
			g.strategy = StrategyUUID
		}
	}

	return g
}

// Strategy reports the scheme chosen at construction.
func (g *Generator) Strategy() Strategy {
	return g.strategy
}

// NewID returns a fresh identifier. It never fails: if the entropy source
// breaks after the probe, that call degrades to a fallback identifier.
func (g *Generator) NewID() string {
	if g.strategy == StrategyUUID {
		id, err := uuid.NewRandomFromReader(g.entropy)
		if err == nil {
			return id.String()
		}
	}

	return g.fallbackID()
}

// fallbackID concatenates the clock, a process-wide sequence number and a
// fixed-width random suffix. The sequence keeps ids distinct within one
// millisecond; the fixed width keeps the concatenation unambiguous.
func (g *Generator) fallbackID() string {
	seq := g.seq.Add(1)
	suffix := mrand.IntN(suffixRange) //nolint:gosec // uniqueness comes from the sequence, not the suffix

	return fmt.Sprintf("%d-%s%06d", g.now().UnixMilli(), strconv.FormatUint(seq, 36), suffix)
}
