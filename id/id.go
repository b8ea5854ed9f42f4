// Package id generates the identifiers attached to pools and queued entries.
package id

import (
	"log"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
)

// A Generator produces unique IDs.
type Generator interface {
	Generate() string
}

var (
	generatorMu           sync.Mutex
	generatorInstantiated bool
	generator             Generator
)

// UseSequential configures the package to generate small sequential IDs.
// Sequential IDs make runs reproducible. Must be called before the first
// Generate call.
func UseSequential() {
	setGenerator(&sequentialGenerator{})
}

// UseRandom configures the package to generate globally unique random IDs.
// Must be called before the first Generate call.
func UseRandom() {
	setGenerator(randomGenerator{})
}

func setGenerator(g Generator) {
	generatorMu.Lock()
	defer generatorMu.Unlock()

	if generatorInstantiated {
		log.Panic("cannot change id generator type after using it")
	}

	generator = g
	generatorInstantiated = true
}

// Generate returns the next ID from the configured generator. If no generator
// was configured, random IDs are used.
func Generate() string {
	generatorMu.Lock()
	if !generatorInstantiated {
		generator = randomGenerator{}
		generatorInstantiated = true
	}
	g := generator
	generatorMu.Unlock()

	return g.Generate()
}

type sequentialGenerator struct {
	nextID uint64
}

func (g *sequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.nextID, 1)
	return strconv.FormatUint(n, 10)
}

type randomGenerator struct{}

func (randomGenerator) Generate() string {
	return xid.New().String()
}
