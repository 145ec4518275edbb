package cmd

import (
	"os"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for dlobfiller, trimmed from
// cmd/perpdexd/cmd/root.go's chain-node command tree (init, genesis, keys,
// pruning, snapshot, tendermint config) down to what a standalone DLOB
// filler process needs: serve and version.
func NewRootCmd() *cobra.Command {
	logger := log.NewLogger(os.Stdout)

	rootCmd := &cobra.Command{
		Use:   "dlobfiller",
		Short: "Off-chain DLOB order filler",
		Long: `dlobfiller drives a decentralized limit order book matching core:
it ingests order events, scans for crossing fills and trigger activations,
and hands the results to an external transaction submitter.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())
			return nil
		},
	}

	rootCmd.AddCommand(
		NewServeCmd(logger),
		NewVersionCmd(),
	)

	return rootCmd
}
