package main

import (
	"os"

	"github.com/chasta/skyguard/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	command := NewSkyguardCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewSkyguardCtlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skyguard [flags] [options]",
		Short: "skyguard estimates lightning protection costs and reads the stored leads.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdEstimate())
	cmd.AddCommand(cli.NewCmdGet())
	cmd.AddCommand(cli.NewCmdExport())
	cmd.AddCommand(cli.NewCmdToken())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
