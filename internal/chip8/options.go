package chip8

import (
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// Option configures a machine.
type Option func(*Machine)

// WithLogger sets the logger used for load, halt and trace messages.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithTrace enables logging of every executed instruction at debug level.
func WithTrace(trace bool) Option {
	return func(m *Machine) {
		m.trace = trace
	}
}

// WithRandom sets the random byte source used by RND.
func WithRandom(random func() byte) Option {
	return func(m *Machine) {
		m.random = random
	}
}

// WithSeed makes RND deterministic by seeding the random source.
func WithSeed(seed uint64) Option {
	rng := rand.New(rand.NewPCG(seed, seed))
	return WithRandom(func() byte {
		return byte(rng.Uint32())
	})
}
