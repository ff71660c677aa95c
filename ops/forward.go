package ops

import (
	"fmt"

	"gorgonia.org/tensor"
)

// ForwardOps applies the phase-applicable subset of list, in order, to sample.
//
// For each op it gathers the tensors bound to the op's input keys, invokes
// Forward and writes the results back under the op's output keys. A missing
// input key is a contract violation (ErrMissingInput), not a data condition.
// An op with no declared outputs has its result discarded; this is the
// declared-discard case the verifier insists on, never a silent loss.
//
// The sample is mutated in place. Callers that need isolation from the
// underlying storage deep-copy before calling; see dataset.OpDataset.
func ForwardOps(list []Op, sample Sample, state *State) error {
	for _, op := range FilterPhase(list, state.Phase) {
		def := op.Def()

		data := make([]*tensor.Dense, len(def.Inputs))
		for i, key := range def.Inputs {
			v, ok := sample[key]
			if !ok {
				return fmt.Errorf("op %s: key %q: %w", opName(op), key, ErrMissingInput)
			}
			data[i] = v
		}

		result, err := op.Forward(data, state)
		if err != nil {
			return fmt.Errorf("op %s: %w", opName(op), err)
		}

		if len(def.Outputs) == 0 {
			continue
		}
		if len(result) != len(def.Outputs) {
			return fmt.Errorf("op %s: got %d results for %d outputs: %w",
				opName(op), len(result), len(def.Outputs), ErrArityMismatch)
		}
		for i, key := range def.Outputs {
			sample[key] = result[i]
		}
	}

	return nil
}

// opName identifies an op in error messages by its concrete type.
func opName(op Op) string {
	return fmt.Sprintf("%T", op)
}
