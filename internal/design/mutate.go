package design

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrNoMutableSite is returned when every position of a sequence is
// locked by a constraint and no edit can be proposed.
var ErrNoMutableSite = errors.New("no mutable site: every position is constrained")

// editKind is one of the three sequence edits.
type editKind int

const (
	substitution editKind = iota
	insertion
	deletion
)

// String is used in trace output and the sqlite recorder.
func (k editKind) String() string {
	switch k {
	case substitution:
		return "substitution"
	case insertion:
		return "insertion"
	case deletion:
		return "deletion"
	}

	return "unknown"
}

// edit is a single proposed change to a sequence.
type edit struct {
	kind editKind
	pos  int
}

// mutator proposes edits on sequences according to a discrete
// distribution over edit kinds.
type mutator struct {
	// cumulative distribution over {substitution, insertion, deletion}
	cdf [3]float64

	rng *rand.Rand
}

// newMutator normalizes the edit-kind probabilities and returns a
// mutator. An all-zero or negative distribution is a configuration
// error.
func newMutator(probs [3]float64, rng *rand.Rand) (*mutator, error) {
	sum := 0.0
	for _, p := range probs {
		if p < 0 {
			return nil, fmt.Errorf("failed to create mutator: negative mutation probability %f", p)
		}
		sum += p
	}
	if sum == 0 {
		return nil, errors.New("failed to create mutator: mutation probabilities sum to zero")
	}

	m := &mutator{rng: rng}
	acc := 0.0
	for i, p := range probs {
		acc += p / sum
		m.cdf[i] = acc
	}

	return m, nil
}

// sampleKind draws an edit kind from the normalized distribution.
func (m *mutator) sampleKind() editKind {
	r := m.rng.Float64()
	for i, c := range m.cdf {
		if r < c {
			return editKind(i)
		}
	}

	return deletion
}

// propose returns a mutated copy of seq and a remapped copy of its
// constraints. The inputs are never modified: the runner keeps them for
// the rejection branch.
//
// Deletions are invalid on length-1 sequences. When one is drawn the
// operator falls back to an insertion at the same position, matching
// the behavior of never emitting an empty sequence.
func (m *mutator) propose(seq string, cs ConstraintSet) (string, ConstraintSet, edit, error) {
	unlocked := false
	for pos := 0; pos < len(seq); pos++ {
		if !cs.Locked(pos) {
			unlocked = true
			break
		}
	}
	if !unlocked {
		return "", nil, edit{}, ErrNoMutableSite
	}

	// an unlocked site exists, so this terminates with probability 1
	var pos int
	var kind editKind
	for {
		pos = m.rng.Intn(len(seq))
		kind = m.sampleKind()
		if !cs.Locked(pos) {
			break
		}
	}

	if kind == deletion && len(seq) == 1 {
		kind = insertion
	}

	var mutated string
	switch kind {
	case substitution:
		// resampling the original residue is a permitted no-op
		mutated = seq[:pos] + string(randResidue(m.rng)) + seq[pos+1:]
	case insertion:
		mutated = seq[:pos] + string(randResidue(m.rng)) + seq[pos:]
	case deletion:
		mutated = seq[:pos] + seq[pos+1:]
	}

	return mutated, cs.remap(pos, kind), edit{kind: kind, pos: pos}, nil
}
