package main

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/torchnode/cmd"
	"github.com/smazurov/torchnode/internal/config"
	"github.com/smazurov/torchnode/internal/logging"
	"github.com/smazurov/torchnode/internal/strobe"
	"github.com/smazurov/torchnode/internal/version"
	"github.com/spf13/cobra"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port       string `help:"Port to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`
	CORSOrigin string `help:"Allowed CORS origin" default:"*" toml:"server.cors_origin" env:"SERVER_CORS_ORIGIN"`

	// Torch settings
	TorchRoot string `help:"LED class directory" default:"/sys/class/leds" toml:"torch.root" env:"TORCH_ROOT"`
	TorchLED  string `help:"Torch LED name, auto-detected when empty" default:"" toml:"torch.led" env:"TORCH_LED"`

	// Strobe settings; the [strobe] table is reloaded when the file changes
	StrobeMaxLevel      int `help:"Highest slider level" default:"9" toml:"strobe.max_level" env:"STROBE_MAX_LEVEL"`
	StrobeStepMs        int `help:"Interval step per slider level in milliseconds" default:"40" toml:"strobe.step_ms" env:"STROBE_STEP_MS"`
	StrobeMinIntervalMs int `help:"Shortest strobe interval in milliseconds" default:"20" toml:"strobe.min_interval_ms" env:"STROBE_MIN_INTERVAL_MS"`

	// Auth settings
	AuthUsername string `help:"Basic auth username" default:"admin" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"password" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Features settings
	FeaturesIndicatorLED  bool   `help:"Mirror the torch on the board status LED" default:"false" toml:"features.indicator_led" env:"FEATURES_INDICATOR_LED"`
	FeaturesIndicatorName string `help:"Status LED name, detected from the board when empty" default:"" toml:"features.indicator_name" env:"FEATURES_INDICATOR_NAME"`
	FeaturesMetrics       bool   `help:"Serve Prometheus metrics on /metrics" default:"true" toml:"features.metrics" env:"FEATURES_METRICS"`
	FeaturesConfigWatch   bool   `help:"Reload the [strobe] table when the config file changes" default:"true" toml:"features.config_watch" env:"FEATURES_CONFIG_WATCH"`

	// Update settings
	UpdateEnabled    bool   `help:"Expose the release check endpoint" default:"true" toml:"update.enabled" env:"UPDATE_ENABLED"`
	UpdateRepository string `help:"GitHub repository for releases" default:"smazurov/torchnode" toml:"update.repository" env:"UPDATE_REPOSITORY"`
	UpdatePrerelease bool   `help:"Include prereleases" default:"false" toml:"update.prerelease" env:"UPDATE_PRERELEASE"`

	// Logging settings
	LoggingLevel     string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat    string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingTorch     string `help:"Torch logging level" default:"info" toml:"logging.torch" env:"LOGGING_TORCH"`
	LoggingStrobe    string `help:"Strobe logging level" default:"info" toml:"logging.strobe" env:"LOGGING_STROBE"`
	LoggingPanel     string `help:"Panel logging level" default:"info" toml:"logging.panel" env:"LOGGING_PANEL"`
	LoggingAPI       string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
	LoggingHTTP      string `help:"HTTP request logging level" default:"info" toml:"logging.http" env:"LOGGING_HTTP"`
	LoggingIndicator string `help:"Indicator LED logging level" default:"info" toml:"logging.indicator" env:"LOGGING_INDICATOR"`
}

func (o *Options) loggingConfig() logging.Config {
	return logging.Config{
		Level:  o.LoggingLevel,
		Format: o.LoggingFormat,
		Modules: map[string]string{
			"torch":     o.LoggingTorch,
			"strobe":    o.LoggingStrobe,
			"panel":     o.LoggingPanel,
			"api":       o.LoggingAPI,
			"http":      o.LoggingHTTP,
			"indicator": o.LoggingIndicator,
		},
	}
}

func (o *Options) rate() strobe.Rate {
	return config.StrobeSection{
		MaxLevel:      o.StrobeMaxLevel,
		StepMs:        o.StrobeStepMs,
		MinIntervalMs: o.StrobeMinIntervalMs,
	}.Rate()
}

func main() {
	var root *cobra.Command

	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, root); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}
		logging.Initialize(opts.loggingConfig())

		var (
			mu  sync.Mutex
			svc *service
		)

		hooks.OnStart(func() {
			logger := logging.GetLogger("main")
			logger.Info("Starting torchnode", "version", version.Version, "config", opts.Config)

			s := newService(opts)
			mu.Lock()
			svc = s
			mu.Unlock()

			if runErr := s.run(); runErr != nil {
				logger.Error("Failed to start HTTP server", "error", runErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			mu.Lock()
			s := svc
			mu.Unlock()

			if s != nil {
				s.shutdown(5 * time.Second)
			}
		})
	})

	root = cli.Root()
	root.Use = "torchnode"
	root.Short = "Flashlight control for LED class torch devices"
	root.Version = version.Version
	root.SetVersionTemplate(version.String() + "\n")

	root.AddCommand(
		cmd.CreateOnCmd(),
		cmd.CreateOffCmd(),
		cmd.CreateStrobeCmd(),
		cmd.CreateDevicesCmd(),
		cmd.CreateUpdateCmd(),
	)

	cli.Run()
}
