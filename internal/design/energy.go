package design

import "fmt"

// Weights scales each energy term. A zero weight disables its term:
// the raw value is neither computed nor added.
type Weights struct {
	// Length scales the over-length penalty
	Length float64 `mapstructure:"length"`

	// Identity scales sequence identity to the native sequence.
	// Positive values reward divergence from the native sequence.
	Identity float64 `mapstructure:"identity"`

	// PTM scales the pTM deficit (1 - pTM)
	PTM float64 `mapstructure:"ptm"`

	// PLDDT scales the pLDDT deficit (1 - pLDDT/100)
	PLDDT float64 `mapstructure:"plddt"`

	// Globularity scales the deviation from an ideally compact globule
	Globularity float64 `mapstructure:"globularity"`

	// BackboneCoord scales CA deviation from the reference structure
	BackboneCoord float64 `mapstructure:"bb-coord"`

	// AllAtomCoord scales all-atom deviation at constrained positions
	AllAtomCoord float64 `mapstructure:"all-atom-coord"`

	// SurfaceHydro scales the surface-exposed hydrophobics fraction
	SurfaceHydro float64 `mapstructure:"sasa"`
}

// validate errors on negative weights.
func (w Weights) validate() error {
	named := map[string]float64{
		"length":         w.Length,
		"identity":       w.Identity,
		"ptm":            w.PTM,
		"plddt":          w.PLDDT,
		"globularity":    w.Globularity,
		"bb-coord":       w.BackboneCoord,
		"all-atom-coord": w.AllAtomCoord,
		"sasa":           w.SurfaceHydro,
	}
	for name, weight := range named {
		if weight < 0 {
			return fmt.Errorf("failed to validate weights: %s is negative (%f)", name, weight)
		}
	}

	return nil
}

// ReferenceState is the oracle's result for the native sequence,
// computed once at run start and read-only afterward. It is the fixed
// comparison basis for the coordination terms.
type ReferenceState struct {
	// Structures predicted for the native sequence, one per trajectory
	Structures []*Structure

	// Constraints on the native sequence at run start
	Constraints ConstraintSet
}

// energyFunc combines the enabled terms into one scalar per sequence.
type energyFunc struct {
	weights Weights

	// the native sequence, the identity term's reference
	native string

	// maximum length before the length penalty applies
	maxLen int

	// whether to fold candidates and add structure terms
	predictStructure bool

	oracle Oracle
}

// score computes the energy of every sequence in the batch, plus the
// predicted structure per sequence when structure terms are enabled.
// An oracle failure fails the whole batch: no partial energies.
func (e *energyFunc) score(names, seqs []string, css []ConstraintSet, ref *ReferenceState) ([]float64, []*Structure, error) {
	energies := make([]float64, len(seqs))

	if e.weights.Length != 0 {
		for i, seq := range seqs {
			energies[i] += e.weights.Length * lengthPenalty(seq, e.maxLen)
		}
	}
	if e.weights.Identity != 0 {
		for i, seq := range seqs {
			energies[i] += e.weights.Identity * seqIdentity(seq, e.native)
		}
	}

	if !e.predictStructure {
		return energies, nil, nil
	}

	preds, err := e.oracle.Fold(names, seqs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to score batch: %v", err)
	}
	if len(preds) != len(seqs) {
		return nil, nil, fmt.Errorf("failed to score batch: %d predictions for %d sequences", len(preds), len(seqs))
	}

	structures := make([]*Structure, len(preds))
	for i, pred := range preds {
		structures[i] = pred.Structure

		if e.weights.PTM != 0 {
			energies[i] += e.weights.PTM * (1 - pred.PTM)
		}
		if e.weights.PLDDT != 0 {
			energies[i] += e.weights.PLDDT * (1 - pred.PLDDT/100)
		}
		if e.weights.Globularity != 0 {
			energies[i] += e.weights.Globularity * globularity(pred.Structure)
		}
		if e.weights.SurfaceHydro != 0 {
			energies[i] += e.weights.SurfaceHydro * surfaceExposedHydrophobics(pred.Structure)
		}

		// no reference before the initial native fold
		if ref == nil {
			continue
		}

		if e.weights.BackboneCoord != 0 {
			energies[i] += e.weights.BackboneCoord * backboneCoordination(pred.Structure, ref.Structures[i])
		}
		if e.weights.AllAtomCoord != 0 {
			energies[i] += e.weights.AllAtomCoord * allAtomCoordination(pred.Structure, ref.Structures[i], css[i], ref.Constraints)
		}
	}

	return energies, structures, nil
}

// lengthPenalty is the number of residues beyond maxLen, 0 below it.
func lengthPenalty(seq string, maxLen int) float64 {
	if over := len(seq) - maxLen; over > 0 {
		return float64(over)
	}

	return 0
}

// seqIdentity is the normalized identity of seq to ref: the length of
// their longest common subsequence over the longer length. Defined
// across indels without requiring an alignment. In [0,1], 1 when equal.
func seqIdentity(seq, ref string) float64 {
	if len(seq) == 0 || len(ref) == 0 {
		return 0
	}

	// single-row LCS
	prev := make([]int, len(ref)+1)
	curr := make([]int, len(ref)+1)
	for i := 1; i <= len(seq); i++ {
		for j := 1; j <= len(ref); j++ {
			if seq[i-1] == ref[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	longer := len(seq)
	if len(ref) > longer {
		longer = len(ref)
	}

	return float64(prev[len(ref)]) / float64(longer)
}
