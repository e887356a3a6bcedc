package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smazurov/torchnode/internal/logging"
	"github.com/smazurov/torchnode/internal/strobe"
	"github.com/spf13/cobra"
)

// CreateOnCmd creates the "on" command.
func CreateOnCmd() *cobra.Command {
	return switchCmd("on", "Turn the torch on", true)
}

// CreateOffCmd creates the "off" command.
func CreateOffCmd() *cobra.Command {
	return switchCmd("off", "Turn the torch off", false)
}

func switchCmd(use, short string, on bool) *cobra.Command {
	var opts deviceOptions

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  short + ". The LED keeps its state after the command exits.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.load(cmd); err != nil {
				return err
			}
			ctrl := opts.controller(cmd.ErrOrStderr())
			cmd.SilenceUsage = true

			if on {
				return ctrl.TurnOn()
			}
			return ctrl.TurnOff()
		},
	}
	addDeviceFlags(cmd, &opts)
	return cmd
}

// CreateStrobeCmd creates the "strobe" command.
func CreateStrobeCmd() *cobra.Command {
	var opts deviceOptions
	var level int
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "strobe",
		Short: "Strobe the torch",
		Long: `Blinks the torch at the rate of the given slider level until the duration ` +
			`elapses or the process is interrupted, then switches it off. Level 0 is a steady light.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.load(cmd); err != nil {
				return err
			}
			cmd.SilenceUsage = true

			rate := opts.rate()
			if level < 0 || level > rate.Max {
				return fmt.Errorf("level must be between 0 and %d", rate.Max)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			return runStrobe(ctx, &opts, rate, level, cmd)
		},
	}
	addDeviceFlags(cmd, &opts)
	cmd.Flags().IntVarP(&level, "level", "l", 5, "Slider level, 0 for steady light")
	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "How long to run, 0 until interrupted")
	return cmd
}

func runStrobe(ctx context.Context, opts *deviceOptions, rate strobe.Rate, level int, cmd *cobra.Command) error {
	ctrl := opts.controller(cmd.ErrOrStderr())
	if !ctrl.FlashAvailable() {
		return fmt.Errorf("no flash available")
	}

	var sched *strobe.Scheduler
	if level == 0 {
		if err := ctrl.TurnOn(); err != nil {
			return err
		}
	} else {
		sched = strobe.NewScheduler(ctrl, logging.GetLogger("strobe"), strobe.WithMinInterval(rate.Min))
		interval := rate.Interval(level)
		fmt.Fprintf(cmd.OutOrStdout(), "Strobing %s every %s\n", ctrl.DeviceName(), interval)
		sched.Start(interval)
	}

	<-ctx.Done()

	if sched != nil {
		sched.Stop()
	}
	return ctrl.TurnOff()
}
