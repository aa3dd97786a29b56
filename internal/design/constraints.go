package design

import "sort"

// Constraint kinds with special meaning to the optimizer. Other kinds
// (eg region tags) are carried and remapped but otherwise ignored.
const (
	// NoMutate marks positions the mutation operator must never touch.
	NoMutate = "no_mut"

	// AllAtom marks positions whose atoms are held against the reference
	// structure by the all-atom coordination term. They are also locked.
	AllAtom = "all_atm"
)

// ConstraintSet maps a constraint kind to the sequence positions it
// acts on. Positions are kept sorted and must always be valid indices
// into the paired sequence.
type ConstraintSet map[string][]int

// copy returns a deep copy of the set.
func (cs ConstraintSet) copy() ConstraintSet {
	copied := make(ConstraintSet, len(cs))
	for kind, positions := range cs {
		copied[kind] = append([]int{}, positions...)
	}

	return copied
}

// Locked returns whether the position is constrained against mutation.
func (cs ConstraintSet) Locked(pos int) bool {
	for _, kind := range []string{NoMutate, AllAtom} {
		for _, p := range cs[kind] {
			if p == pos {
				return true
			}
		}
	}

	return false
}

// remap returns a new ConstraintSet with positions re-indexed for an
// edit at pos. Substitutions leave the set unchanged. Insertions shift
// every position at or after pos up by one; the inserted position
// itself inherits no constraint. Deletions drop pos from every list and
// shift every position after it down by one.
func (cs ConstraintSet) remap(pos int, kind editKind) ConstraintSet {
	remapped := make(ConstraintSet, len(cs))
	for constraint, positions := range cs {
		newPositions := []int{}
		for _, p := range positions {
			switch kind {
			case substitution:
				newPositions = append(newPositions, p)
			case insertion:
				if p >= pos {
					newPositions = append(newPositions, p+1)
				} else {
					newPositions = append(newPositions, p)
				}
			case deletion:
				if p == pos {
					continue // the constrained residue is gone
				} else if p > pos {
					newPositions = append(newPositions, p-1)
				} else {
					newPositions = append(newPositions, p)
				}
			}
		}
		sort.Ints(newPositions)
		remapped[constraint] = newPositions
	}

	return remapped
}

// valid returns whether every constrained position indexes a sequence
// of the passed length.
func (cs ConstraintSet) valid(seqLen int) bool {
	for _, positions := range cs {
		for _, p := range positions {
			if p < 0 || p >= seqLen {
				return false
			}
		}
	}

	return true
}
