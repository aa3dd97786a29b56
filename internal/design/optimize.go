package design

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"protmc/config"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// Trajectory is one independent optimization run: the current
// sequence/constraint pair, its energy and, when structure terms are
// enabled, the last accepted structure.
type Trajectory struct {
	// Seq is the current sequence
	Seq string

	// Constraints on the current sequence
	Constraints ConstraintSet

	// Energy of the current sequence
	Energy float64

	// Structure last accepted for this trajectory (nil without
	// structure terms)
	Structure *Structure
}

// StepTrace is one record of the optional observability hook: the
// outcome of one trajectory at one step.
type StepTrace struct {
	Step       int
	Trajectory int
	Kind       string
	Pos        int
	Temp       float64
	Current    float64
	Proposed   float64
	Accept     float64
	Accepted   bool
	Seq        string
}

// Optimizer runs N annealed MCMC trajectories from the native
// sequence. Construct with NewOptimizer and start with Run.
type Optimizer struct {
	conf *config.Config

	// the native sequence every trajectory starts from
	native string

	// constraints on the native sequence
	constraints ConstraintSet

	// directory accepted structures are checkpointed to. Empty
	// disables checkpointing
	outDir string

	mut    *mutator
	energy *energyFunc

	// reference state, computed once before the step loop
	ref *ReferenceState

	// initial energy of the native sequence, kept for the report
	initial float64

	rng *rand.Rand

	// Trace, when set, is invoked once per trajectory per step. It
	// replaces ad hoc progress files: the runner itself never writes
	// diagnostics to disk.
	Trace func(StepTrace)
}

// NewOptimizer validates the run configuration and returns an
// Optimizer. A missing or non-canonical native sequence and
// out-of-range constraints are construction errors, not run errors.
func NewOptimizer(conf *config.Config, native string, constraints ConstraintSet, oracle Oracle, outDir string, seed int64) (*Optimizer, error) {
	if native == "" {
		return nil, errors.New("failed to create optimizer: a native sequence is required")
	}
	if !validSeq(native) {
		return nil, fmt.Errorf("failed to create optimizer: %q contains non-canonical residues", native)
	}

	if constraints == nil {
		constraints = ConstraintSet{}
	}
	if !constraints.valid(len(native)) {
		return nil, fmt.Errorf("failed to create optimizer: constraint position out of range for a %d residue sequence", len(native))
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	if conf.PredictStructure && oracle == nil {
		return nil, errors.New("failed to create optimizer: structure terms enabled without an oracle")
	}

	rng := rand.New(rand.NewSource(seed))
	mut, err := newMutator([3]float64{
		conf.Mutation.Substitution,
		conf.Mutation.Insertion,
		conf.Mutation.Deletion,
	}, rng)
	if err != nil {
		return nil, err
	}

	weights := Weights{
		Length:        conf.Weights.Length,
		Identity:      conf.Weights.Identity,
		PTM:           conf.Weights.PTM,
		PLDDT:         conf.Weights.PLDDT,
		Globularity:   conf.Weights.Globularity,
		BackboneCoord: conf.Weights.BackboneCoord,
		AllAtomCoord:  conf.Weights.AllAtomCoord,
		SurfaceHydro:  conf.Weights.SurfaceHydro,
	}
	if err := weights.validate(); err != nil {
		return nil, err
	}

	return &Optimizer{
		conf:        conf,
		native:      native,
		constraints: constraints,
		outDir:      outDir,
		mut:         mut,
		rng:         rng,
		energy: &energyFunc{
			weights:          weights,
			native:           native,
			maxLen:           conf.MaxLength,
			predictStructure: conf.PredictStructure,
			oracle:           oracle,
		},
	}, nil
}

// InitialEnergy is the native sequence's energy, available after Run.
func (o *Optimizer) InitialEnergy() float64 {
	return o.initial
}

// Run seeds the trajectories from the native sequence, computes the
// reference state, then advances every trajectory one step per outer
// iteration: propose, score the whole batch, accept or reject each
// trajectory with the annealed Metropolis criterion. Termination is
// step-count-based only.
//
// Any mid-step failure (a fully locked sequence, an oracle error)
// returns with every trajectory as it was at the start of that step.
func (o *Optimizer) Run() ([]Trajectory, error) {
	if o.outDir != "" {
		if err := os.MkdirAll(o.outDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory %s: %v", o.outDir, err)
		}
	}

	n := o.conf.Trajectories
	names := make([]string, n)
	seqs := make([]string, n)
	css := make([]ConstraintSet, n)
	for i := 0; i < n; i++ {
		names[i] = fmt.Sprintf("sequence_%d_cycle_0", i)
		seqs[i] = o.native
		css[i] = o.constraints.copy()
	}

	// initial state: fold the native sequence once and keep the result
	// as the fixed reference for the coordination terms
	energies, structures, err := o.energy.score(names, seqs, css, nil)
	if err != nil {
		return nil, err
	}

	trajs := make([]Trajectory, n)
	for i := 0; i < n; i++ {
		trajs[i] = Trajectory{Seq: seqs[i], Constraints: css[i], Energy: energies[i]}
		if structures != nil {
			trajs[i].Structure = structures[i]
		}
	}
	o.initial = energies[0]

	if o.conf.PredictStructure {
		o.ref = &ReferenceState{Structures: structures, Constraints: o.constraints.copy()}
	}

	for step := 0; step < o.conf.Steps; step++ {
		propSeqs := make([]string, n)
		propCSs := make([]ConstraintSet, n)
		edits := make([]edit, n)
		for i := range trajs {
			propSeqs[i], propCSs[i], edits[i], err = o.mut.propose(trajs[i].Seq, trajs[i].Constraints)
			if err != nil {
				return nil, fmt.Errorf("failed at step %d, trajectory %d: %w", step, i, err)
			}
			names[i] = fmt.Sprintf("sequence_%d_cycle_%d", i, step+1)
		}

		propEnergies, propStructures, err := o.energy.score(names, propSeqs, propCSs, o.ref)
		if err != nil {
			// trajectory state is untouched for the failed step
			return nil, fmt.Errorf("failed at step %d: %w", step, err)
		}

		temp := temperature(o.conf.Schedule.Temperature, o.conf.Schedule.Decay, step)
		for i := range trajs {
			current := trajs[i].Energy
			p := acceptProbability(current, propEnergies[i], temp)
			accepted := o.rng.Float64() < p

			if accepted {
				trajs[i].Seq = propSeqs[i]
				trajs[i].Constraints = propCSs[i]
				trajs[i].Energy = propEnergies[i]
				if propStructures != nil {
					trajs[i].Structure = propStructures[i]
					o.checkpoint(step, i, propStructures[i])
				}
			}

			if o.Trace != nil {
				o.Trace(StepTrace{
					Step:       step,
					Trajectory: i,
					Kind:       edits[i].kind.String(),
					Pos:        edits[i].pos,
					Temp:       temp,
					Current:    current,
					Proposed:   propEnergies[i],
					Accept:     p,
					Accepted:   accepted,
					Seq:        trajs[i].Seq,
				})
			}
		}
	}

	return trajs, nil
}

// checkpoint writes an accepted structure to the output directory.
// Write failures only cost the artifact, never the run.
func (o *Optimizer) checkpoint(step, traj int, s *Structure) {
	if o.outDir == "" {
		return
	}

	path := filepath.Join(o.outDir, fmt.Sprintf("%04d_design_%d.pdb", step, traj))
	if err := s.Write(path); err != nil {
		stderr.Printf("failed to write checkpoint %s: %v", path, err)
	}
}
