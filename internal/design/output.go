package design

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"sort"
	"strings"
	"time"
)

// Design is one finished trajectory in the output report.
type Design struct {
	// Trajectory index
	Trajectory int `json:"trajectory"`

	// Seq is the designed sequence
	Seq string `json:"seq"`

	// Energy of the designed sequence
	Energy float64 `json:"energy"`

	// Identity to the native sequence in [0,1]
	Identity float64 `json:"identity"`
}

// Output is a struct containing design results for a run.
type Output struct {
	// Native sequence the run was seeded with
	Native string `json:"native"`

	// Time, ex: "2018-01-01 20:41:00"
	Time string `json:"time"`

	// Execution is the number of seconds it took to execute the run
	Execution float64 `json:"execution"`

	// InitialEnergy of the native sequence
	InitialEnergy float64 `json:"initialEnergy"`

	// Designs, best energy first
	Designs []Design `json:"designs"`
}

// WriteJSON turns finished trajectories into an Output report and
// writes it to the filename requested.
func WriteJSON(filename, native string, trajs []Trajectory, initialEnergy, seconds float64) ([]byte, error) {
	t := time.Now()
	stamp := fmt.Sprintf(
		"%d/%02d/%02d %02d:%02d:%02d",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
	)

	designs := []Design{}
	for i, traj := range trajs {
		designs = append(designs, Design{
			Trajectory: i,
			Seq:        traj.Seq,
			Energy:     traj.Energy,
			Identity:   seqIdentity(traj.Seq, native),
		})
	}

	// sort designs in increasing energy order
	sort.Slice(designs, func(i, j int) bool {
		return designs[i].Energy < designs[j].Energy
	})

	out := Output{
		Native:        native,
		Time:          stamp,
		Execution:     seconds,
		InitialEnergy: initialEnergy,
		Designs:       designs,
	}

	output, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return output, fmt.Errorf("failed to serialize output: %v", err)
	}

	if err = ioutil.WriteFile(filename, output, 0666); err != nil {
		return output, fmt.Errorf("failed to write the output: %v", err)
	}

	return output, nil
}

// WriteFasta writes the designed sequences as a multifasta.
func WriteFasta(filename string, trajs []Trajectory) error {
	var sb strings.Builder
	for i, traj := range trajs {
		fmt.Fprintf(&sb, ">design_%d energy=%.4f\n%s\n", i, traj.Energy, traj.Seq)
	}

	if err := ioutil.WriteFile(filename, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write designs to %s: %v", filename, err)
	}

	return nil
}
