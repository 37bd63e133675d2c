package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iptv-player",
		Short: "TV channel player",
		Long: `iptv-player keeps an ordered list of TV channels, plays the selected
channel through an external player and persists the list between runs.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newChannelsCommand(nil))

	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
