package design

import (
	"math"
	"testing"
)

func Test_lengthPenalty(t *testing.T) {
	tests := []struct {
		name   string
		seq    string
		maxLen int
		want   float64
	}{
		{"below max", "ACDE", 10, 0},
		{"at max", "ACDE", 4, 0},
		{"one over", "ACDEF", 4, 1},
		{"three over", "ACDEFGH", 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lengthPenalty(tt.seq, tt.maxLen); got != tt.want {
				t.Errorf("lengthPenalty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_seqIdentity(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		ref  string
		want float64
	}{
		{"identical", "ACDE", "ACDE", 1},
		{"one substitution", "ACDF", "ACDE", 0.75},
		{"disjoint", "AAAA", "CCCC", 0},
		{"one insertion", "ACDEF", "ACDE", 0.8},
		{"empty", "", "ACDE", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := seqIdentity(tt.seq, tt.ref); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("seqIdentity(%q, %q) = %v, want %v", tt.seq, tt.ref, got, tt.want)
			}
		})
	}
}

func Test_energyFunc_score_sequenceTerms(t *testing.T) {
	e := &energyFunc{
		weights: Weights{Length: 1, Identity: 1},
		native:  "ACDE",
		maxLen:  2,
	}

	energies, structures, err := e.score(
		[]string{"a"},
		[]string{"ACDE"},
		[]ConstraintSet{{}},
		nil,
	)
	if err != nil {
		t.Fatalf("score() error = %v", err)
	}
	if structures != nil {
		t.Errorf("score() returned structures without structure terms")
	}

	// 2 residues over max plus identity 1
	if want := 3.0; math.Abs(energies[0]-want) > 1e-9 {
		t.Errorf("score() = %v, want %v", energies[0], want)
	}
}

// a zero weight contributes exactly 0 even when the raw term would be
// extreme: all-zero weights yield zero energy regardless of what the
// oracle reports.
func Test_energyFunc_score_zeroWeights(t *testing.T) {
	e := &energyFunc{
		weights:          Weights{},
		native:           "ACDE",
		maxLen:           1, // every sequence is over-length
		predictStructure: true,
		oracle:           &stubOracle{ptm: 0, plddt: 0},
	}

	energies, structures, err := e.score(
		[]string{"a", "b"},
		[]string{"ACDEFGHIKL", "ACDE"},
		[]ConstraintSet{{}, {}},
		nil,
	)
	if err != nil {
		t.Fatalf("score() error = %v", err)
	}

	for i, energy := range energies {
		if energy != 0 {
			t.Errorf("score()[%d] = %v, want exactly 0", i, energy)
		}
	}
	if len(structures) != 2 {
		t.Errorf("score() returned %d structures, want 2", len(structures))
	}
}

func Test_energyFunc_score_structureTerms(t *testing.T) {
	native := "ACDEFGHIKL"
	e := &energyFunc{
		weights:          Weights{PTM: 1, PLDDT: 1},
		native:           native,
		maxLen:           100,
		predictStructure: true,
		oracle:           &stubOracle{ptm: 0.8, plddt: 70},
	}

	energies, _, err := e.score([]string{"a"}, []string{native}, []ConstraintSet{{}}, nil)
	if err != nil {
		t.Fatalf("score() error = %v", err)
	}

	// (1 - 0.8) + (1 - 70/100)
	if want := 0.5; math.Abs(energies[0]-want) > 1e-9 {
		t.Errorf("score() = %v, want %v", energies[0], want)
	}
}

// the coordination terms only apply once a reference state exists and
// are zero against an identical structure.
func Test_energyFunc_score_coordination(t *testing.T) {
	native := "ACDEFGHIKL"
	oracle := &stubOracle{ptm: 1, plddt: 100}
	cs := ConstraintSet{AllAtom: []int{2, 3}}

	e := &energyFunc{
		weights:          Weights{BackboneCoord: 1, AllAtomCoord: 1},
		native:           native,
		maxLen:           100,
		predictStructure: true,
		oracle:           oracle,
	}

	// fold the native once for the reference
	_, refStructures, err := e.score([]string{"ref"}, []string{native}, []ConstraintSet{cs}, nil)
	if err != nil {
		t.Fatalf("score() error = %v", err)
	}
	ref := &ReferenceState{Structures: refStructures, Constraints: cs}

	// identical sequence folds to the identical synthetic chain
	energies, _, err := e.score([]string{"a"}, []string{native}, []ConstraintSet{cs}, ref)
	if err != nil {
		t.Fatalf("score() error = %v", err)
	}
	if energies[0] != 0 {
		t.Errorf("score() against identical reference = %v, want 0", energies[0])
	}
}

func Test_energyFunc_score_oracleFailure(t *testing.T) {
	e := &energyFunc{
		weights:          Weights{PTM: 1},
		native:           "ACDE",
		maxLen:           100,
		predictStructure: true,
		oracle:           &stubOracle{failAfter: 1, ptm: 1, plddt: 100},
	}

	if _, _, err := e.score([]string{"a"}, []string{"ACDE"}, []ConstraintSet{{}}, nil); err != nil {
		t.Fatalf("score() error = %v", err)
	}

	// the second batch fails whole: no partial energies
	energies, structures, err := e.score([]string{"b"}, []string{"ACDE"}, []ConstraintSet{{}}, nil)
	if err == nil {
		t.Fatal("score() expected an error from the failing oracle")
	}
	if energies != nil || structures != nil {
		t.Errorf("score() returned partial results on failure: %v %v", energies, structures)
	}
}
