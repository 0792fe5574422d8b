package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "espalier",
	Short: "Espalier manages governed private computation instances",
	Long: `Espalier is the entity layer of a private computation workflow:
instances whose fields are guarded by immutability rules and
declarative validation hooks.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the espalier.yaml config file")
}

func loadConfig(cmd *cobra.Command) (cli.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return cli.LoadConfig(path)
}
