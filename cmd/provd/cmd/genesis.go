package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/provability/provability/x/bounty"
)

// GenesisCmd returns bounty genesis helpers.
func GenesisCmd() *cobra.Command {
	genesisCmd := &cobra.Command{
		Use:   "genesis",
		Short: "Bounty genesis state subcommands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	genesisCmd.AddCommand(
		&cobra.Command{
			Use:   "default",
			Short: "Print the default bounty genesis state",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(bounty.AppModuleBasic{}.DefaultGenesis(nil)))
				return err
			},
		},
		&cobra.Command{
			Use:   "validate [genesis-file]",
			Short: "Validate a bounty genesis state file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				bz, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				if err := (bounty.AppModuleBasic{}).ValidateGenesis(nil, nil, bz); err != nil {
					return err
				}
				Logger(cmd).Info("genesis valid", "file", args[0])
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", args[0])
				return err
			},
		},
	)

	return genesisCmd
}
