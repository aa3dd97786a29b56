package design

import (
	"fmt"
	"strings"
	"time"

	"protmc/config"

	"github.com/spf13/cobra"
)

// RunCmd takes a cobra command (with its flags) and runs a design.
func RunCmd(cmd *cobra.Command, args []string) {
	in, err := cmd.Flags().GetString("in")
	if in == "" || err != nil {
		cmd.Help()
		stderr.Fatalln("\nno input fasta passed.")
	}

	out, _ := cmd.Flags().GetString("out")
	outDir, _ := cmd.Flags().GetString("outdir")
	constraintFlag, _ := cmd.Flags().GetString("constraints")
	traceDB, _ := cmd.Flags().GetString("trace")
	seed, _ := cmd.Flags().GetInt64("seed")

	conf, err := config.New()
	if err != nil {
		stderr.Fatalln(err)
	}

	records, err := ReadFasta(in)
	if err != nil {
		stderr.Fatalf("failed to read native sequence from %s: %v", in, err)
	}
	if len(records) > 1 {
		stderr.Printf(
			"warning: %d sequences in %s. Only designing against the first: %s\n",
			len(records), in, records[0].ID,
		)
	}
	native := records[0].Seq

	constraints, err := ParseConstraints(constraintFlag)
	if err != nil {
		stderr.Fatalln(err)
	}

	var oracle Oracle
	if conf.PredictStructure {
		if oracle, err = NewExecOracle(conf.Oracle.FoldBin); err != nil {
			stderr.Fatalln(err)
		}
	}

	opt, err := NewOptimizer(conf, native, constraints, oracle, outDir, seed)
	if err != nil {
		stderr.Fatalln(err)
	}

	if traceDB != "" {
		recorder, err := OpenRecorder(traceDB)
		if err != nil {
			stderr.Fatalln(err)
		}
		defer recorder.Close()

		if err = recorder.Begin(native, conf.Trajectories, conf.Steps); err != nil {
			stderr.Fatalln(err)
		}
		opt.Trace = recorder.Record

		if conf.Verbose {
			fmt.Printf("tracing run %s to %s\n", recorder.RunID, traceDB)
		}
	}

	if conf.Verbose {
		fmt.Print(Banner(conf, native))
	}

	start := time.Now()
	trajs, err := opt.Run()
	if err != nil {
		stderr.Fatalln(err)
	}

	if out == "" {
		out = "designs.json"
	}
	if _, err = WriteJSON(out, native, trajs, opt.InitialEnergy(), time.Since(start).Seconds()); err != nil {
		stderr.Fatalln(err)
	}
	if err = WriteFasta(out+".fa", trajs); err != nil {
		stderr.Fatalln(err)
	}

	if conf.Verbose {
		fmt.Printf("%s\n", time.Since(start))
	}
}

// Banner renders the run settings the way the verbose run log prints
// them before the step loop starts.
func Banner(conf *config.Config, native string) string {
	var sb strings.Builder
	add := func(format string, args ...interface{}) {
		fmt.Fprintf(&sb, format, args...)
	}

	add("protmc design\n")
	add("---------------------------------------\n")
	add("seed sequence:\n%s\n\n", native)
	add("algorithm:    %s\n", conf.Sampler)
	add("steps:        %d\n", conf.Steps)
	add("trajectories: %d\n", conf.Trajectories)
	add("mut_p:        [%.2f %.2f %.2f]\n", conf.Mutation.Substitution, conf.Mutation.Insertion, conf.Mutation.Deletion)
	add("T:            %.2f\n", conf.Schedule.Temperature)
	add("M:            %.3f\n\n", conf.Schedule.Decay)

	add("energy terms:\n")
	add("length      |%d\t|%.3f\n", conf.MaxLength, conf.Weights.Length)
	add("identity    |\t|%.3f\n", conf.Weights.Identity)
	if conf.PredictStructure {
		add("pTM         |\t|%.3f\n", conf.Weights.PTM)
		add("pLDDT       |\t|%.3f\n", conf.Weights.PLDDT)
		add("globularity |\t|%.3f\n", conf.Weights.Globularity)
		add("bb_coord    |\t|%.3f\n", conf.Weights.BackboneCoord)
		add("all_atm     |\t|%.3f\n", conf.Weights.AllAtomCoord)
		add("sasa        |\t|%.3f\n", conf.Weights.SurfaceHydro)
	}

	return sb.String()
}
