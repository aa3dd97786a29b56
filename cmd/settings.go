package cmd

import (
	"encoding/json"
	"fmt"

	"protmc/config"

	"github.com/spf13/cobra"
)

// settingsCmd represents the settings command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the resolved run settings",
	Long: `Print the settings a design run would use after merging defaults,
settings.yaml and command line flags`,
	Run: func(cmd *cobra.Command, args []string) {
		conf, err := config.New()
		if err != nil {
			stderr.Fatalln(err)
		}

		b, err := json.MarshalIndent(conf, "", "  ")
		if err != nil {
			stderr.Fatalln(err)
		}
		fmt.Println(string(b))
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}
