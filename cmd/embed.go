package cmd

import (
	"protmc/internal/embed"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// embedCmd represents the embed command
var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Extract representations for the sequences in a fasta file",
	Long: `Stream every sequence of a multifasta through the external representation
extractor in fixed-size batches, writing one representation file per sequence.
Batches whose outputs already exist are skipped so interrupted extractions
can resume`,
	Run: embed.RunCmd,
}

// set flags
func init() {
	rootCmd.AddCommand(embedCmd)

	embedCmd.Flags().StringP("in", "i", "", "Input file name with sequences to embed <FASTA>")
	embedCmd.Flags().StringP("out", "o", "representations", "Destination directory for representations")
	embedCmd.Flags().IntP("batch-size", "b", 10, "Sequences per extractor invocation")

	viper.BindPFlag("oracle.batch-size", embedCmd.Flags().Lookup("batch-size"))
}
