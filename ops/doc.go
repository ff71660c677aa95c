/*
Package ops provides the operation graph layer of the framework: mode-gated
transform units that are chained over named tensor fields of a sample.

# Core Components

Op:
  - A single transform with a Definition declaring its input keys, output keys
    and the phases it applies to.
  - Forward receives one tensor per declared input key and returns one tensor
    per declared output key. An op with no input keys synthesizes data; an op
    with no output keys has its result discarded by the executor.

Combinators:
  - OneOf wraps several alternative ops sharing one Definition and delegates
    each Forward call to one of them, chosen uniformly at random.

Executor:
  - Flatten normalizes arbitrarily nested op lists into one flat sequence.
  - FilterPhase selects the ops applicable to an execution phase.
  - ForwardOps runs a filtered chain over a sample mapping, binding outputs
    back into the mapping.

Verifier:
  - Verify statically checks an op list against the component it is placed in:
    capability family, chain entry/exit keys and key routing between
    neighbouring ops. Violations are configuration errors and are never
    retried.

Registry:
  - Registry stores named, semver-versioned op factories so pipelines can be
    assembled from configuration files.

# Basic Usage

	chain := []ops.Op{
		transform.NewRescale(127.5, 127.5, []string{"x"}, []string{"x"}, ops.EveryPhase()),
	}
	if err := ops.Verify(chain, ops.ComponentPipeline); err != nil {
		return err
	}
	err := ops.ForwardOps(chain, sample, &ops.State{Phase: ops.Train, Logger: lggr})
*/
package ops
