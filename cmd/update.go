package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/smazurov/torchnode/internal/logging"
	"github.com/smazurov/torchnode/internal/systemd"
	"github.com/smazurov/torchnode/internal/updater"
	"github.com/smazurov/torchnode/internal/version"
	"github.com/spf13/cobra"
)

// CreateUpdateCmd creates the "update" command.
func CreateUpdateCmd() *cobra.Command {
	var checkOnly, restart, userUnit bool
	var unit string
	var opts updater.Options

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update torchnode from GitHub releases",
		Long: `Replaces the running binary with the latest GitHub release. ` +
			`Pass --restart to restart the systemd unit over D-Bus once the binary is replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logging.Initialize(logging.Config{Level: "info"})
			cmd.SilenceUsage = true

			svc, err := updater.NewService(opts, logging.GetLogger("updater"))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Current version: %s\n", version.String())

			if checkOnly {
				info, err := svc.Check(ctx)
				if err != nil {
					return err
				}
				if !info.UpdateAvailable {
					fmt.Fprintf(out, "Up to date (latest %s)\n", info.LatestVersion)
					return nil
				}
				fmt.Fprintf(out, "Update available: %s (published %s)\n",
					info.LatestVersion, info.PublishedAt.Format(time.DateOnly))
				return nil
			}

			info, err := svc.Apply(ctx)
			if updater.Code(err) == updater.ErrCodeNoUpdate {
				fmt.Fprintf(out, "Up to date (latest %s)\n", info.LatestVersion)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Updated to %s\n", info.LatestVersion)

			if !restart {
				return nil
			}
			return restartUnit(ctx, out, unit, userUnit)
		},
	}
	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only check for a newer release")
	cmd.Flags().StringVar(&opts.Repository, "repository", updater.DefaultRepository, "GitHub repository slug")
	cmd.Flags().BoolVar(&opts.Prerelease, "prerelease", false, "Include prereleases")
	cmd.Flags().BoolVar(&restart, "restart", false, "Restart the systemd unit after updating")
	cmd.Flags().StringVar(&unit, "unit", systemd.DefaultUnit, "systemd unit to restart")
	cmd.Flags().BoolVar(&userUnit, "user", false, "Use the user instance of systemd")
	return cmd
}

func restartUnit(ctx context.Context, out io.Writer, unit string, user bool) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	mgr, err := systemd.NewManager(ctx, user)
	if err != nil {
		return err
	}
	defer mgr.Close()

	if err := mgr.Restart(ctx, unit); err != nil {
		return err
	}
	state, err := mgr.ActiveState(ctx, unit)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Restarted %s (%s)\n", systemd.UnitName(unit), state)
	return nil
}
