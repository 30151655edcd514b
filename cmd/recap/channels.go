package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recap/internal/channel"
)

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List the configured distribution channels",
	Long: `Prints the channel catalog from the config. Channels marked with *
are enabled by default when the studio opens.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		set := channel.NewSet(cfg.Channels...)
		for _, ch := range set.All() {
			mark := " "
			if ch.Enabled {
				mark = "*"
			}
			fmt.Printf("%s %-10s %s\n", mark, ch.ID, ch.Name)
		}
		return nil
	},
}
