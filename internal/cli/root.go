// Package cli implements creditctl, the operator tool for offline
// eligibility what-ifs, installment math, event tailing, health checks and
// local credential setup.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "creditctl",
		Short:        "Credit decisioning operator tool",
		SilenceUsage: true,
	}

	cmd.AddCommand(
		evaluateCmd(),
		emiCmd(),
		watchCmd(),
		tokenCmd(),
		certsCmd(),
		healthCmd(),
	)
	return cmd
}
