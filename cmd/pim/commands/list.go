package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pim/internal/core/domain"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the declared packages and their constraints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dev, _ := cmd.Flags().GetBool("dev")
			output, _ := cmd.Flags().GetString("output")

			if err := validateOutputMode(output); err != nil {
				return err
			}

			m, err := c.app.List(cmd.Context(), manifestFlag(cmd))
			if err != nil {
				return err
			}

			scope := domain.ScopeRuntime
			if dev {
				scope = domain.ScopeDevelop
			}
			return renderManifest(cmd.OutOrStdout(), m, scope, output)
		},
	}

	cmd.Flags().BoolP("dev", "d", false, "List the development section instead of the runtime section")
	cmd.Flags().StringP("output", "o", "text", "Output format: text or json")
	return cmd
}
