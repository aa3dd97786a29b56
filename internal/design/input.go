package design

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Fasta is a single record from a fasta file.
type Fasta struct {
	// ID from the header row
	ID string

	// Seq is the record's sequence
	Seq string
}

// ReadFasta reads a fasta file (by its path on the local FS) to a
// slice of records. The first record is the native sequence for
// protmc design.
func ReadFasta(path string) (records []Fasta, err error) {
	if !filepath.IsAbs(path) {
		path, err = filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create path to input file: %v", err)
		}
	}

	dat, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	records, err = parseFasta(string(dat))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", path, err)
	}

	return records, nil
}

// parseFasta parses multifasta contents to records.
func parseFasta(contents string) (records []Fasta, err error) {
	lines := strings.Split(contents, "\n")

	// gather the headers
	var headerIndices []int
	var ids []string
	for i, line := range lines {
		if strings.HasPrefix(line, ">") {
			headerIndices = append(headerIndices, i)
			ids = append(ids, strings.Fields(line[1:])[0])
		}
	}

	// non-residue symbols are stripped rather than erred on
	unwantedChars := regexp.MustCompile(`(?im)[^A-Z]`)

	// accumulate the sequences from between the headers
	for i, headerIndex := range headerIndices {
		nextLine := len(lines)
		if i < len(headerIndices)-1 {
			nextLine = headerIndices[i+1]
		}
		seqLines := lines[headerIndex+1 : nextLine]
		seqJoined := strings.ToUpper(strings.Join(seqLines, ""))
		seq := unwantedChars.ReplaceAllString(seqJoined, "")

		records = append(records, Fasta{ID: ids[i], Seq: seq})
	}

	// opened and parsed file but found nothing
	if len(records) < 1 {
		return nil, fmt.Errorf("no fasta records found")
	}

	return records, nil
}

// ParseConstraints parses a constraint flag into a ConstraintSet.
// The format is semicolon separated kinds with comma separated
// positions or dash ranges, eg "no_mut:0,2,5-8;all_atm:12-14".
func ParseConstraints(flag string) (ConstraintSet, error) {
	cs := ConstraintSet{}
	if strings.TrimSpace(flag) == "" {
		return cs, nil
	}

	for _, kindEntry := range strings.Split(flag, ";") {
		kindEntry = strings.TrimSpace(kindEntry)
		if kindEntry == "" {
			continue
		}

		parts := strings.SplitN(kindEntry, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("failed to parse constraint %q: want kind:positions", kindEntry)
		}
		kind := strings.TrimSpace(parts[0])

		positions := []int{}
		for _, entry := range strings.Split(parts[1], ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}

			if strings.Contains(entry, "-") {
				bounds := strings.SplitN(entry, "-", 2)
				start, errS := strconv.Atoi(strings.TrimSpace(bounds[0]))
				end, errE := strconv.Atoi(strings.TrimSpace(bounds[1]))
				if errS != nil || errE != nil || end < start {
					return nil, fmt.Errorf("failed to parse constraint range %q", entry)
				}
				for p := start; p <= end; p++ {
					positions = append(positions, p)
				}
				continue
			}

			p, err := strconv.Atoi(entry)
			if err != nil {
				return nil, fmt.Errorf("failed to parse constraint position %q", entry)
			}
			positions = append(positions, p)
		}

		cs[kind] = append(cs[kind], positions...)
	}

	return cs, nil
}
