package cmd

import (
	"protmc/internal/design"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// designCmd represents the design command
var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Design sequences from a native seed sequence",
	Long: `Run simulated annealing MCMC from the native sequence in the input fasta.

Each trajectory repeatedly proposes a substitution, insertion or deletion at
an unconstrained position, scores the mutated sequence with a weighted energy
function and accepts or rejects the proposal with the Metropolis criterion
under a decaying temperature. When structure prediction is enabled the energy
includes pTM, pLDDT, globularity, surface hydrophobics and deviation from the
native structure, computed by the external folding predictor`,
	Run: design.RunCmd,
}

// set flags
func init() {
	rootCmd.AddCommand(designCmd)

	designCmd.Flags().StringP("in", "i", "", "Input file name with the native sequence <FASTA>")
	designCmd.Flags().StringP("out", "o", "designs.json", "Output file name for designed sequences")
	designCmd.Flags().StringP("outdir", "d", "", "Directory for accepted structure checkpoints (optional)")
	designCmd.Flags().StringP("constraints", "c", "", "Constraints, eg \"no_mut:0,5-8;all_atm:12-14\"")
	designCmd.Flags().String("trace", "", "Path to a SQLite file to record a step trace to (optional)")
	designCmd.Flags().Int64("seed", 1, "Random seed")
	designCmd.Flags().IntP("trajectories", "n", 5, "Number of independent trajectories")
	designCmd.Flags().IntP("steps", "s", 1000, "Sampling steps per trajectory")
	designCmd.Flags().Int("max-length", 200, "Maximum sequence length before the length penalty applies")
	designCmd.Flags().Bool("predict-structure", true, "Predict structures and use structure based energy terms")
	designCmd.Flags().Float64P("temperature", "T", 10, "Starting sampling temperature")
	designCmd.Flags().Float64P("decay", "M", 0.01, "Rate of temperature decay")

	viper.BindPFlag("trajectories", designCmd.Flags().Lookup("trajectories"))
	viper.BindPFlag("steps", designCmd.Flags().Lookup("steps"))
	viper.BindPFlag("max-length", designCmd.Flags().Lookup("max-length"))
	viper.BindPFlag("predict-structure", designCmd.Flags().Lookup("predict-structure"))
	viper.BindPFlag("schedule.temperature", designCmd.Flags().Lookup("temperature"))
	viper.BindPFlag("schedule.decay", designCmd.Flags().Lookup("decay"))
}
