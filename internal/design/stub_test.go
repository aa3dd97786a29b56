package design

import (
	"errors"
	"fmt"
	"strings"

	"protmc/config"
)

// threeLetter inverts the one-letter residue codes for building
// synthetic PDB fixtures.
func threeLetter(code byte) string {
	for three, one := range resCodes {
		if one == code {
			return three
		}
	}

	return "UNK"
}

// pdbForSeq renders a synthetic extended-chain PDB for a sequence:
// N, CA and C atoms per residue, spaced along the x axis.
func pdbForSeq(seq string, spacing float64) []byte {
	var sb strings.Builder

	serial := 1
	for i := 0; i < len(seq); i++ {
		res := threeLetter(seq[i])
		for j, name := range []string{"N", "CA", "C"} {
			x := float64(i)*spacing + float64(j)
			fmt.Fprintf(
				&sb,
				"ATOM  %5d  %-3s %3s A%4d    %8.3f%8.3f%8.3f  1.00  0.00\n",
				serial, name, res, i+1, x, 0.0, 0.0,
			)
			serial++
		}
	}
	sb.WriteString("END\n")

	return []byte(sb.String())
}

// stubOracle folds every sequence into a synthetic extended chain
// with fixed confidence scores. failAfter > 0 fails the batch once
// that many calls have happened.
type stubOracle struct {
	ptm   float64
	plddt float64

	calls     int
	failAfter int
}

func (o *stubOracle) Fold(names, seqs []string) ([]Prediction, error) {
	o.calls++
	if o.failAfter > 0 && o.calls > o.failAfter {
		return nil, errors.New("predictor crashed")
	}

	preds := []Prediction{}
	for i, name := range names {
		structure, err := parsePDB(name, pdbForSeq(seqs[i], 3.8))
		if err != nil {
			return nil, err
		}

		preds = append(preds, Prediction{
			Name:      name,
			Seq:       seqs[i],
			Structure: structure,
			PTM:       o.ptm,
			PLDDT:     o.plddt,
		})
	}

	return preds, nil
}

// testConf returns a sequence-terms-only run configuration.
func testConf() *config.Config {
	return &config.Config{
		Sampler:      config.SamplerAnnealing,
		Trajectories: 1,
		Steps:        5,
		MaxLength:    10,
		Mutation:     config.MutationConfig{Substitution: 0.6, Insertion: 0.2, Deletion: 0.2},
		Schedule:     config.ScheduleConfig{Temperature: 10, Decay: 0.01},
		Weights:      config.WeightsConfig{Length: 0.2, Identity: 0.2},
		Oracle:       config.OracleConfig{FoldBin: "esmfold", EmbedBin: "esmembed", BatchSize: 10},
	}
}
