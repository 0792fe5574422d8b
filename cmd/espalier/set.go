package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/cli"
)

var setCmd = &cobra.Command{
	Use:   "set <instance-id> <field> <value>",
	Short: "Apply a governed field update",
	Long: `Writes a new value to one field of a stored instance. The write goes
through the full governance pipeline: immutable fields are rejected,
and validation hooks may refuse the new state.`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		ent, err := cli.SetField(cmd.Context(), cfg, args[0], args[1], args[2])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated %s.%s (status %s)\n", ent.InstanceID(), args[1], ent.Status())
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
}
