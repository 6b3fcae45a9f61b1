package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "uslctl",
		Short:         "Operator tooling for the Unified Shopping List Alexa skill",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(
		newValidateCmd(),
		newCallbackCmd(),
		newMessageCmd(),
	)

	return cmd
}
