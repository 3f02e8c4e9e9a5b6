package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newLockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lock",
		Short: "Write a structural snapshot of the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := c.app.Lock(cmd.Context(), manifestFlag(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "snapshot written (fingerprint %s, %d runtime, %d dev)\n",
				snap.Fingerprint, len(snap.Packages), len(snap.DevPackages))
			return nil
		},
	}
}
