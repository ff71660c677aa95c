package ops

import (
	"math/rand"

	"github.com/trainflow/trainflow/pkg/logger"
)

// State is the read-only execution context passed to every Forward call.
//
// Rand, when set, is the random source stochastic ops must draw from; drivers
// running parallel workers seed one source per worker to keep runs
// reproducible. When Rand is nil, stochastic ops fall back to the process
// source. A State (and in particular its Rand) must not be shared between
// concurrently executing chains.
type State struct {
	Phase  Phase
	Rand   *rand.Rand
	Logger logger.Logger
}
