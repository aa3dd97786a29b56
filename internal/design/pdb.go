package design

import (
	"fmt"
	"io/ioutil"
	"math"
	"strconv"
	"strings"
)

// atom is a single ATOM record from a PDB file.
type atom struct {
	// atom name, eg "CA"
	name string

	// one-letter residue code
	residue byte

	// residue sequence number, 0-indexed after parsing
	resSeq int

	x, y, z float64
}

// Structure is the artifact returned by the folding oracle for one
// sequence: the predicted coordinates parsed from PDB.
type Structure struct {
	// Name of the designed sequence this structure was predicted for
	Name string

	atoms []atom

	// raw PDB contents, written back out verbatim on checkpoint
	pdb []byte
}

// three- to one-letter residue codes, for ATOM record parsing.
var resCodes = map[string]byte{
	"ALA": 'A', "CYS": 'C', "ASP": 'D', "GLU": 'E', "PHE": 'F',
	"GLY": 'G', "HIS": 'H', "ILE": 'I', "LYS": 'K', "LEU": 'L',
	"MET": 'M', "ASN": 'N', "PRO": 'P', "GLN": 'Q', "ARG": 'R',
	"SER": 'S', "THR": 'T', "VAL": 'V', "TRP": 'W', "TYR": 'Y',
}

// parsePDB reads the ATOM records of a PDB file into a Structure.
// Residue numbers are rebased to 0 so they line up with sequence
// positions in a ConstraintSet.
func parsePDB(name string, contents []byte) (*Structure, error) {
	s := &Structure{Name: name, pdb: contents}

	firstRes := -1
	for _, line := range strings.Split(string(contents), "\n") {
		if !strings.HasPrefix(line, "ATOM") || len(line) < 54 {
			continue
		}

		// fixed PDB columns: name 13-16, resName 18-20, resSeq 23-26,
		// x 31-38, y 39-46, z 47-54
		atomName := strings.TrimSpace(line[12:16])
		resName := strings.TrimSpace(line[17:20])
		resSeq, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
		if err != nil {
			return nil, fmt.Errorf("failed to parse residue number in %s: %v", name, err)
		}

		x, errX := strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
		z, errZ := strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
		if errX != nil || errY != nil || errZ != nil {
			return nil, fmt.Errorf("failed to parse coordinates in %s", name)
		}

		if firstRes < 0 {
			firstRes = resSeq
		}

		code, ok := resCodes[resName]
		if !ok {
			continue // skip heteroatoms and unknown residues
		}

		s.atoms = append(s.atoms, atom{
			name:    atomName,
			residue: code,
			resSeq:  resSeq - firstRes,
			x:       x,
			y:       y,
			z:       z,
		})
	}

	if len(s.atoms) == 0 {
		return nil, fmt.Errorf("failed to parse %s: no ATOM records", name)
	}

	return s, nil
}

// Write persists the structure to a PDB file.
func (s *Structure) Write(path string) error {
	return ioutil.WriteFile(path, s.pdb, 0644)
}

// alphaCarbons returns the CA trace of the structure.
func (s *Structure) alphaCarbons() []atom {
	cas := []atom{}
	for _, a := range s.atoms {
		if a.name == "CA" {
			cas = append(cas, a)
		}
	}

	return cas
}

// dist is the euclidean distance between two atoms.
func dist(a, b atom) float64 {
	dx, dy, dz := a.x-b.x, a.y-b.y, a.z-b.z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// radiusOfGyration of the CA trace.
func (s *Structure) radiusOfGyration() float64 {
	cas := s.alphaCarbons()
	if len(cas) == 0 {
		return 0
	}

	var cx, cy, cz float64
	for _, a := range cas {
		cx += a.x
		cy += a.y
		cz += a.z
	}
	n := float64(len(cas))
	cx, cy, cz = cx/n, cy/n, cz/n

	var sum float64
	for _, a := range cas {
		dx, dy, dz := a.x-cx, a.y-cy, a.z-cz
		sum += dx*dx + dy*dy + dz*dz
	}

	return math.Sqrt(sum / n)
}

// globularity measures the deviation of the radius of gyration from
// that of an ideally compact globule of the same length,
// Rg = 2.2 * N^0.38 (Flory scaling for folded proteins). 0 is ideal.
func globularity(s *Structure) float64 {
	n := len(s.alphaCarbons())
	if n == 0 {
		return 0
	}

	ideal := 2.2 * math.Pow(float64(n), 0.38)
	return math.Abs(s.radiusOfGyration()-ideal) / ideal
}

// surfaceExposedHydrophobics is the fraction of hydrophobic residues
// with fewer than burialNeighbors CA atoms within contactRadius, a
// contact-count proxy for solvent accessibility.
func surfaceExposedHydrophobics(s *Structure) float64 {
	const (
		contactRadius   = 10.0
		burialNeighbors = 16
	)

	cas := s.alphaCarbons()
	if len(cas) == 0 {
		return 0
	}

	hydrophobic := 0
	exposed := 0
	for i, a := range cas {
		if hydropathy[a.residue] <= 0 {
			continue
		}
		hydrophobic++

		neighbors := 0
		for j, b := range cas {
			if i != j && dist(a, b) < contactRadius {
				neighbors++
			}
		}
		if neighbors < burialNeighbors {
			exposed++
		}
	}

	if hydrophobic == 0 {
		return 0
	}

	return float64(exposed) / float64(hydrophobic)
}

// backboneCoordination is the RMSD between the CA traces of a
// structure and the reference, over their shared length. Indel drift
// beyond the shared length is penalized by the length term instead.
func backboneCoordination(s, ref *Structure) float64 {
	cas := s.alphaCarbons()
	refCAs := ref.alphaCarbons()

	n := len(cas)
	if len(refCAs) < n {
		n = len(refCAs)
	}
	if n == 0 {
		return 0
	}

	var sum float64
	for i := 0; i < n; i++ {
		d := dist(cas[i], refCAs[i])
		sum += d * d
	}

	return math.Sqrt(sum / float64(n))
}

// allAtomCoordination is the RMSD over every atom belonging to an
// all-atom constrained residue, comparing the structure against the
// reference at the respective constrained positions.
func allAtomCoordination(s, ref *Structure, cs, refCS ConstraintSet) float64 {
	positions := cs[AllAtom]
	refPositions := refCS[AllAtom]

	n := len(positions)
	if len(refPositions) < n {
		n = len(refPositions)
	}
	if n == 0 {
		return 0
	}

	var sum float64
	count := 0
	for i := 0; i < n; i++ {
		atoms := s.residueAtoms(positions[i])
		refAtoms := ref.residueAtoms(refPositions[i])

		pairs := len(atoms)
		if len(refAtoms) < pairs {
			pairs = len(refAtoms)
		}
		for j := 0; j < pairs; j++ {
			d := dist(atoms[j], refAtoms[j])
			sum += d * d
			count++
		}
	}

	if count == 0 {
		return 0
	}

	return math.Sqrt(sum / float64(count))
}

// residueAtoms returns every atom of the residue at a sequence position.
func (s *Structure) residueAtoms(pos int) []atom {
	atoms := []atom{}
	for _, a := range s.atoms {
		if a.resSeq == pos {
			atoms = append(atoms, a)
		}
	}

	return atoms
}
