package ops

import (
	"fmt"
	"math/rand"

	"gorgonia.org/tensor"
)

// OneOf applies exactly one of several alternative ops per Forward call,
// chosen uniformly at random. All wrapped ops must share the same inputs,
// outputs and mode, enforced at construction; the OneOf then carries that
// shared contract as its own.
//
// Selection is independent per call: there is no memoization across samples.
// The draw comes from State.Rand when the caller provides one, otherwise from
// the process random source, so reproducibility is only at the granularity of
// however the driver seeds its sources.
type OneOf struct {
	SampleBase
	choices []Op
}

// NewOneOf wraps choices into a OneOf. It requires at least one op and fails
// with ErrOneOfContract when the ops do not share a single Definition.
func NewOneOf(choices ...Op) (*OneOf, error) {
	if len(choices) == 0 {
		return nil, fmt.Errorf("%w: no ops given", ErrOneOfContract)
	}

	def := choices[0].Def()
	for _, op := range choices[1:] {
		if !op.Def().Equal(def) {
			return nil, fmt.Errorf("%w: %s differs from %s",
				ErrOneOfContract, opName(op), opName(choices[0]))
		}
	}

	return &OneOf{
		SampleBase: NewSampleBase(def.Inputs, def.Outputs, def.Mode),
		choices:    append([]Op(nil), choices...),
	}, nil
}

// Forward delegates to one uniformly-randomly selected wrapped op.
func (o *OneOf) Forward(data []*tensor.Dense, state *State) ([]*tensor.Dense, error) {
	var i int
	if state != nil && state.Rand != nil {
		i = state.Rand.Intn(len(o.choices))
	} else {
		i = rand.Intn(len(o.choices))
	}

	return o.choices[i].Forward(data, state)
}
