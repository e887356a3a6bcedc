package cmd

import (
	"fmt"
	"io"

	"github.com/smazurov/torchnode/internal/config"
	"github.com/smazurov/torchnode/internal/logging"
	"github.com/smazurov/torchnode/internal/strobe"
	"github.com/smazurov/torchnode/internal/torch"
	"github.com/spf13/cobra"
)

// deviceOptions is the subset of the server configuration the one-shot
// commands need. Tags match the server Options so both read the same file.
type deviceOptions struct {
	Config    string
	TorchRoot string `toml:"torch.root" env:"TORCH_ROOT"`
	TorchLED  string `toml:"torch.led" env:"TORCH_LED"`
	LogLevel  string `toml:"logging.level" env:"LOGGING_LEVEL"`
	LogFormat string `toml:"logging.format" env:"LOGGING_FORMAT"`
}

// addDeviceFlags registers the flags shared by on, off, strobe and devices.
func addDeviceFlags(cmd *cobra.Command, opts *deviceOptions) {
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "config.toml", "Path to configuration file")
	cmd.Flags().StringVar(&opts.TorchRoot, "torch-root", torch.DefaultSysfsRoot, "LED class directory")
	cmd.Flags().StringVar(&opts.TorchLED, "torch-led", "", "Torch LED name (auto-detected when empty)")
}

// load overlays the config file and environment, then initializes logging.
func (o *deviceOptions) load(cmd *cobra.Command) error {
	if err := config.LoadConfig(o, cmd); err != nil {
		return err
	}
	if o.LogLevel == "" {
		o.LogLevel = "warn"
	}
	logging.Initialize(logging.Config{Level: o.LogLevel, Format: o.LogFormat})
	return nil
}

func (o *deviceOptions) rate() strobe.Rate {
	rate, err := config.LoadStrobeRate(o.Config)
	if err != nil {
		return strobe.DefaultRate()
	}
	return rate
}

func (o *deviceOptions) controller(out io.Writer) *torch.Controller {
	logger := logging.GetLogger("torch")
	device := torch.New(torch.Config{Root: o.TorchRoot, LED: o.TorchLED}, logger)
	return torch.NewController(device, writerNotifier{out}, logger)
}

// writerNotifier prints notifications for terminal use.
type writerNotifier struct {
	w io.Writer
}

func (n writerNotifier) Notify(message string) {
	fmt.Fprintln(n.w, message)
}
