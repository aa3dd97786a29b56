// Package design optimizes protein sequences with MCMC sampling. An
// annealed Metropolis criterion drives each trajectory from the native
// sequence toward low energy, where energy mixes sequence terms with
// structure terms computed by an external folding predictor.
package design

import "math/rand"

// alphabet is the 20 canonical amino acids.
const alphabet = "ACDEFGHIKLMNPQRSTVWY"

// hydropathy is the Kyte-Doolittle index per residue. Positive values
// are hydrophobic.
var hydropathy = map[byte]float64{
	'A': 1.8, 'C': 2.5, 'D': -3.5, 'E': -3.5, 'F': 2.8,
	'G': -0.4, 'H': -3.2, 'I': 4.5, 'K': -3.9, 'L': 3.8,
	'M': 1.9, 'N': -3.5, 'P': -1.6, 'Q': -3.5, 'R': -4.5,
	'S': -0.8, 'T': -0.7, 'V': 4.2, 'W': -0.9, 'Y': -1.3,
}

// randResidue returns a uniformly random residue from the alphabet.
func randResidue(rng *rand.Rand) byte {
	return alphabet[rng.Intn(len(alphabet))]
}

// validSeq checks that every symbol in seq is a canonical residue.
func validSeq(seq string) bool {
	if seq == "" {
		return false
	}

	for i := 0; i < len(seq); i++ {
		if _, ok := hydropathy[seq[i]]; !ok {
			return false
		}
	}

	return true
}
