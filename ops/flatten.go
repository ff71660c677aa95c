package ops

import "fmt"

// Flatten normalizes v into a flat op sequence. Callers may pass a single Op,
// a []Op, or arbitrarily nested slices ([][]Op, []any mixing both); the result
// preserves depth-first left-to-right order. A nil v yields an empty list.
func Flatten(v any) ([]Op, error) {
	if v == nil {
		return nil, nil
	}

	var out []Op
	if err := flattenInto(&out, v); err != nil {
		return nil, err
	}

	return out, nil
}

func flattenInto(out *[]Op, v any) error {
	switch x := v.(type) {
	case Op:
		*out = append(*out, x)
	case []Op:
		for _, o := range x {
			if err := flattenInto(out, o); err != nil {
				return err
			}
		}
	case [][]Op:
		for _, group := range x {
			if err := flattenInto(out, group); err != nil {
				return err
			}
		}
	case []any:
		for _, e := range x {
			if err := flattenInto(out, e); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: got %T", ErrInvalidOpList, v)
	}

	return nil
}

// FilterPhase returns the ordered sublist of ops whose mode applies to phase
// p. It is pure and idempotent; callers typically apply it once per
// dataset-phase binding rather than per sample.
func FilterPhase(list []Op, p Phase) []Op {
	out := make([]Op, 0, len(list))
	for _, op := range list {
		if op.Def().Mode.Matches(p) {
			out = append(out, op)
		}
	}

	return out
}
