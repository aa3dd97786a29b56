package design

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Prediction is the folding oracle's result for one sequence.
type Prediction struct {
	// Name of the input sequence
	Name string

	// Seq is the input sequence
	Seq string

	// Structure is the predicted structure parsed from PDB
	Structure *Structure

	// PTM is the predicted TM-score in [0,1]
	PTM float64

	// PLDDT is the mean predicted LDDT in [0,100]
	PLDDT float64
}

// Oracle predicts structures for a batch of named sequences. One
// Prediction is returned per input, in input order. Implementations
// must fail the whole batch on any per-sequence failure, naming the
// offending sequence, rather than returning partial results.
type Oracle interface {
	Fold(names, seqs []string) ([]Prediction, error)
}

// execOracle runs an external folding predictor. The predictor is
// invoked once per batch with a multifasta input and an output
// directory; it is expected to write one <name>.pdb per sequence plus
// a scores.tsv with "name<TAB>ptm<TAB>plddt" rows.
type execOracle struct {
	// path to the folding executable
	bin string
}

// NewExecOracle returns an Oracle backed by the folding binary at the
// passed path.
func NewExecOracle(bin string) (Oracle, error) {
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("failed to find a folding executable at %s: %v", bin, err)
	}

	return &execOracle{bin: bin}, nil
}

// Fold writes the batch to a temp fasta, execs the predictor and
// parses its output back into Predictions.
func (o *execOracle) Fold(names, seqs []string) ([]Prediction, error) {
	if len(names) != len(seqs) {
		return nil, fmt.Errorf("failed to fold: %d names for %d sequences", len(names), len(seqs))
	}

	dir, err := ioutil.TempDir("", "protmc-fold-")
	if err != nil {
		return nil, fmt.Errorf("failed to create fold output dir: %v", err)
	}
	defer os.RemoveAll(dir)

	// create the input file
	var in strings.Builder
	for i, name := range names {
		fmt.Fprintf(&in, ">%s\n%s\n", name, seqs[i])
	}
	inPath := filepath.Join(dir, "input.fa")
	if err := ioutil.WriteFile(inPath, []byte(in.String()), 0644); err != nil {
		return nil, fmt.Errorf("failed to create fold input file at %s: %v", inPath, err)
	}

	args := []string{"-i", inPath, "-o", dir}
	if output, err := exec.Command(o.bin, args...).CombinedOutput(); err != nil {
		return nil, fmt.Errorf("failed to execute %s: %v: %s", o.bin, err, string(output))
	}

	scores, err := o.parseScores(filepath.Join(dir, "scores.tsv"))
	if err != nil {
		return nil, err
	}

	preds := []Prediction{}
	for i, name := range names {
		score, ok := scores[name]
		if !ok {
			return nil, fmt.Errorf("failed to fold %s: no confidence scores in predictor output", name)
		}

		pdbPath := filepath.Join(dir, name+".pdb")
		contents, err := ioutil.ReadFile(pdbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to fold %s: no structure at %s: %v", name, pdbPath, err)
		}

		structure, err := parsePDB(name, contents)
		if err != nil {
			return nil, fmt.Errorf("failed to fold %s: %v", name, err)
		}

		preds = append(preds, Prediction{
			Name:      name,
			Seq:       seqs[i],
			Structure: structure,
			PTM:       score.ptm,
			PLDDT:     score.plddt,
		})
	}

	return preds, nil
}

type confidence struct {
	ptm   float64
	plddt float64
}

// parseScores reads the predictor's scores.tsv into a name-keyed map.
func (o *execOracle) parseScores(path string) (map[string]confidence, error) {
	contents, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read predictor scores at %s: %v", path, err)
	}

	scores := make(map[string]confidence)
	for _, line := range strings.Split(string(contents), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) < 3 {
			return nil, fmt.Errorf("failed to parse predictor scores: bad row %q", line)
		}

		ptm, errP := strconv.ParseFloat(cols[1], 64)
		plddt, errL := strconv.ParseFloat(cols[2], 64)
		if errP != nil || errL != nil {
			return nil, fmt.Errorf("failed to parse predictor scores: bad row %q", line)
		}

		if ptm < 0 || ptm > 1 || plddt < 0 || plddt > 100 {
			return nil, fmt.Errorf("failed to parse predictor scores: %s out of range (ptm %f, plddt %f)", cols[0], ptm, plddt)
		}

		scores[cols[0]] = confidence{ptm: ptm, plddt: plddt}
	}

	return scores, nil
}
