package cache

import "github.com/spf13/cobra"

var Command = &cobra.Command{
	Use:   "cache",
	Short: "Manage downloaded indices",
}

func init() {
	Command.AddCommand(cleanCmd)
}
