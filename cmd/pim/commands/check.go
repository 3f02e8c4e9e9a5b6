package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.trai.ch/pim/internal/app"
	"go.trai.ch/pim/internal/core/domain"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the structural checks against the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			policyPath, _ := cmd.Flags().GetString("policy")
			remote, _ := cmd.Flags().GetBool("remote")
			frozen, _ := cmd.Flags().GetBool("frozen")
			watch, _ := cmd.Flags().GetBool("watch")
			output, _ := cmd.Flags().GetString("output")

			if err := validateOutputMode(output); err != nil {
				return err
			}

			opts := app.CheckOptions{
				ManifestPath: manifestFlag(cmd),
				PolicyPath:   policyPath,
				Remote:       remote,
				Frozen:       frozen,
			}

			if watch {
				err := c.app.Watch(cmd.Context(), opts, func(report *domain.Report) {
					_ = renderReport(cmd.OutOrStdout(), report, output)
				})
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}

			report, err := c.app.Check(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if err := renderReport(cmd.OutOrStdout(), report, output); err != nil {
				return err
			}

			if report.HasErrors() {
				return domain.ErrChecksFailed
			}
			return nil
		},
	}

	cmd.Flags().String("policy", "", "Path to the policy file (default: .pim.yaml next to the manifest)")
	cmd.Flags().Bool("remote", false, "Probe the declared sources for package name existence")
	cmd.Flags().Bool("frozen", false, "Require an up-to-date snapshot written by pim lock")
	cmd.Flags().BoolP("watch", "w", false, "Re-run the checks when the manifest or policy changes")
	cmd.Flags().StringP("output", "o", "text", "Output format: text or json")
	return cmd
}
