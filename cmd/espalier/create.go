package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/entity"
)

var createCmd = &cobra.Command{
	Use:   "create <instance-id>",
	Short: "Create a new governed instance",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		role, _ := cmd.Flags().GetString("role")
		status, _ := cmd.Flags().GetString("status")
		gameType, _ := cmd.Flags().GetString("game-type")
		pid, _ := cmd.Flags().GetInt("pid-containers")
		mpc, _ := cmd.Flags().GetInt("mpc-containers")
		tier, _ := cmd.Flags().GetString("tier")
		features, _ := cmd.Flags().GetStringSlice("feature")

		params := entity.Params{
			InstanceID:       args[0],
			Role:             domain.Role(role),
			Status:           domain.Status(status),
			GameType:         domain.GameType(gameType),
			NumPIDContainers: pid,
			NumMPCContainers: mpc,
			Tier:             tier,
		}
		for _, f := range features {
			params.Features = append(params.Features, domain.Feature(f))
		}

		ent, err := cli.Create(cmd.Context(), cfg, params)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created instance %s (status %s)\n", ent.InstanceID(), ent.Status())
	},
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().String("role", string(domain.RolePublisher), "Instance role (PUBLISHER or PARTNER)")
	createCmd.Flags().String("status", "", "Initial status (defaults to CREATED)")
	createCmd.Flags().String("game-type", string(domain.GameTypeLift), "Game type (LIFT or ATTRIBUTION)")
	createCmd.Flags().Int("pid-containers", 1, "Number of PID stage containers")
	createCmd.Flags().Int("mpc-containers", 1, "Number of MPC stage containers")
	createCmd.Flags().String("tier", "", "Release binary tier (rc, canary, latest)")
	createCmd.Flags().StringSlice("feature", nil, "Feature flag to enable (repeatable)")
}
