package ops

import (
	"fmt"
	"slices"
)

// Component identifies where an op list is placed, which determines the
// capability family every op in the list must satisfy.
type Component int

const (
	// ComponentPipeline holds sample-level ops applied per item by the data
	// loading pipeline.
	ComponentPipeline Component = iota
	// ComponentRecordWriter holds sample-level ops applied while writing a
	// preprocessed copy of a dataset to disk.
	ComponentRecordWriter
	// ComponentNetwork holds model-graph ops applied per collated batch.
	ComponentNetwork
)

func (c Component) String() string {
	switch c {
	case ComponentPipeline:
		return "Pipeline"
	case ComponentRecordWriter:
		return "RecordWriter"
	case ComponentNetwork:
		return "Network"
	default:
		return fmt.Sprintf("Component(%d)", int(c))
	}
}

func (c Component) satisfiedBy(op Op) bool {
	switch c {
	case ComponentPipeline, ComponentRecordWriter:
		_, ok := op.(SampleOp)
		return ok
	case ComponentNetwork:
		_, ok := op.(TensorOp)
		return ok
	default:
		return false
	}
}

// Verify statically checks an op list against the component it feeds, before
// any Forward call runs. It enforces:
//
//   - the list is non-empty, its first op declares inputs and its last op
//     declares outputs;
//   - every op satisfies the capability family c requires;
//   - for each adjacent pair, if the next op reads different keys than the
//     current op, the current op must declare outputs, otherwise its result
//     would be lost.
//
// Any violation is a fatal configuration error naming the offending op.
func Verify(list []Op, c Component) error {
	if len(list) == 0 {
		return fmt.Errorf("%s: %w", c, ErrEmptyOpList)
	}

	if len(list[0].Def().Inputs) == 0 {
		return fmt.Errorf("%s: op %s: %w", c, opName(list[0]), ErrChainEntry)
	}
	if len(list[len(list)-1].Def().Outputs) == 0 {
		return fmt.Errorf("%s: op %s: %w", c, opName(list[len(list)-1]), ErrChainExit)
	}

	for i, op := range list {
		if !c.satisfiedBy(op) {
			return fmt.Errorf("%s: op %s: %w", c, opName(op), ErrCapability)
		}

		if i+1 >= len(list) {
			continue
		}
		next := list[i+1].Def().Inputs
		if len(next) > 0 && !slices.Equal(next, op.Def().Inputs) && len(op.Def().Outputs) == 0 {
			return fmt.Errorf("%s: op %s: %w", c, opName(op), ErrResultLost)
		}
	}

	return nil
}
