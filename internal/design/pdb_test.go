package design

import (
	"math"
	"testing"
)

func Test_parsePDB(t *testing.T) {
	s, err := parsePDB("fixture", pdbForSeq("ACD", 3.8))
	if err != nil {
		t.Fatalf("parsePDB() error = %v", err)
	}

	if len(s.atoms) != 9 {
		t.Errorf("parsePDB() atoms = %d, want 9", len(s.atoms))
	}

	cas := s.alphaCarbons()
	if len(cas) != 3 {
		t.Fatalf("parsePDB() CA atoms = %d, want 3", len(cas))
	}

	// residue numbers rebase to 0 and line up with sequence positions
	for i, ca := range cas {
		if ca.resSeq != i {
			t.Errorf("CA %d resSeq = %d, want %d", i, ca.resSeq, i)
		}
	}
	if cas[0].residue != 'A' || cas[1].residue != 'C' || cas[2].residue != 'D' {
		t.Errorf("parsePDB() residues = %c%c%c, want ACD", cas[0].residue, cas[1].residue, cas[2].residue)
	}
}

func Test_parsePDB_empty(t *testing.T) {
	if _, err := parsePDB("empty", []byte("HEADER\nEND\n")); err == nil {
		t.Error("parsePDB() expected an error for a file without ATOM records")
	}
}

func Test_radiusOfGyration(t *testing.T) {
	// two CAs 2 apart: both 1 from the centroid
	pdb := []byte(
		"ATOM      1  CA  ALA A   1       0.000   0.000   0.000  1.00  0.00\n" +
			"ATOM      2  CA  GLY A   2       2.000   0.000   0.000  1.00  0.00\n",
	)
	s, err := parsePDB("two", pdb)
	if err != nil {
		t.Fatalf("parsePDB() error = %v", err)
	}

	if got := s.radiusOfGyration(); math.Abs(got-1) > 1e-9 {
		t.Errorf("radiusOfGyration() = %v, want 1", got)
	}
}

func Test_backboneCoordination(t *testing.T) {
	a, _ := parsePDB("a", pdbForSeq("ACDEF", 3.8))
	b, _ := parsePDB("b", pdbForSeq("ACDEF", 3.8))

	if got := backboneCoordination(a, b); got != 0 {
		t.Errorf("backboneCoordination() identical = %v, want 0", got)
	}

	// a wider chain spacing drifts every CA except the first
	c, _ := parsePDB("c", pdbForSeq("ACDEF", 4.8))
	if got := backboneCoordination(a, c); got <= 0 {
		t.Errorf("backboneCoordination() shifted = %v, want > 0", got)
	}
}

func Test_allAtomCoordination(t *testing.T) {
	a, _ := parsePDB("a", pdbForSeq("ACDEF", 3.8))
	b, _ := parsePDB("b", pdbForSeq("ACDEF", 4.8))
	cs := ConstraintSet{AllAtom: []int{0}}

	// residue 0 sits at the origin under either spacing
	if got := allAtomCoordination(a, b, cs, cs); got != 0 {
		t.Errorf("allAtomCoordination() at origin residue = %v, want 0", got)
	}

	shifted := ConstraintSet{AllAtom: []int{3}}
	if got := allAtomCoordination(a, b, shifted, shifted); got <= 0 {
		t.Errorf("allAtomCoordination() at drifted residue = %v, want > 0", got)
	}

	// no constrained positions, no term
	if got := allAtomCoordination(a, b, ConstraintSet{}, ConstraintSet{}); got != 0 {
		t.Errorf("allAtomCoordination() unconstrained = %v, want 0", got)
	}
}

func Test_globularity(t *testing.T) {
	// an extended chain is far from an ideal globule
	extended, _ := parsePDB("ext", pdbForSeq("ACDEFGHIKLMNPQRSTVWY", 3.8))
	if got := globularity(extended); got <= 0.5 {
		t.Errorf("globularity() extended chain = %v, want > 0.5", got)
	}
}
