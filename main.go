package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/rahulnandan-cmyk/brightnessandtimeout/constants"
	"github.com/rahulnandan-cmyk/brightnessandtimeout/probe"
	"github.com/rahulnandan-cmyk/brightnessandtimeout/probe/definitions"
	"github.com/rahulnandan-cmyk/brightnessandtimeout/suite"
	"github.com/rahulnandan-cmyk/brightnessandtimeout/utils"
)

// Config holds all the configuration values from command line arguments
type Config struct {
	ConfigFile      string `json:"config_file"`
	DeviceID        string `json:"device_id"`
	Connect         string `json:"connect"`
	Disconnect      string `json:"disconnect"`
	ListDevices     bool   `json:"list_devices"`
	ListCoordinates bool   `json:"list_coordinates"`
	BrightnessOnly  bool   `json:"brightness_only"`
	TimeoutOnly     bool   `json:"timeout_only"`
	NoMerge         bool   `json:"no_merge"`
	Debug           bool   `json:"debug"`
}

var rootCmd = &cobra.Command{
	Use:   "brightnessandtimeout",
	Short: "Display settings probe - brightness and screen-timeout validation over ADB",
	Long: `brightnessandtimeout validates Android display settings by driving the
Settings UI with blind coordinate taps over ADB, reading the system
settings back with bounded retries, and asserting the values took effect.
It writes a timestamped log per test and merges them into one report.`,
	Example: `  # Run the full suite with the default configuration
  brightnessandtimeout

  # Use a session config file
  brightnessandtimeout -c brightnessandtimeout.yaml

  # Run against a specific device
  brightnessandtimeout --device-id emulator-5554

  # Connect to a remote device first
  brightnessandtimeout --connect 192.168.1.100:5555

  # List connected devices
  brightnessandtimeout --list-devices

  # Only the screen timeout suite, with debug command logging
  brightnessandtimeout --timeout-only --debug`,
	Run: func(cmd *cobra.Command, args []string) {},
}

var config = &Config{}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&config.ConfigFile, "config", "c",
		getEnv("DISPLAY_PROBE_CONFIG", ""),
		"Session configuration file (YAML)")

	rootCmd.PersistentFlags().StringVarP(&config.DeviceID, "device-id", "d",
		getEnv("DISPLAY_PROBE_DEVICE_ID", ""),
		"ADB device ID")

	rootCmd.PersistentFlags().StringVar(&config.Connect, "connect", "",
		"Connect to remote device (e.g., 192.168.1.100:5555)")

	rootCmd.PersistentFlags().StringVar(&config.Disconnect, "disconnect", "",
		"Disconnect from remote device (or 'all' to disconnect all)")

	rootCmd.PersistentFlags().BoolVar(&config.ListDevices, "list-devices", false,
		"List connected devices and exit")

	rootCmd.PersistentFlags().BoolVar(&config.ListCoordinates, "list-coordinates", false,
		"List configured coordinate names and exit")

	rootCmd.PersistentFlags().BoolVar(&config.BrightnessOnly, "brightness-only", false,
		"Run only the brightness test")

	rootCmd.PersistentFlags().BoolVar(&config.TimeoutOnly, "timeout-only", false,
		"Run only the screen timeout suite")

	rootCmd.PersistentFlags().BoolVar(&config.NoMerge, "no-merge", false,
		"Skip merging session logs into one report")

	rootCmd.PersistentFlags().BoolVar(&config.Debug, "debug", false,
		"Enable debug mode (default: false)")
}

func main() {
	parseArgs()

	// Configure zerolog
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if config.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx := context.Background()

	sessionCfg, err := definitions.LoadConfig(config.ConfigFile)
	if err != nil {
		log.Error().Err(err).Msg("Loading configuration failed")
		os.Exit(2)
	}
	if config.DeviceID != "" {
		sessionCfg.DeviceID = config.DeviceID
	}

	if config.ListCoordinates {
		names := lo.Keys(sessionCfg.Coordinates)
		sort.Strings(names)
		log.Info().Msg("Configured coordinates:")
		for _, name := range names {
			c := sessionCfg.Coordinates[name]
			log.Info().Str("coord", fmt.Sprintf("  %-16s (%g, %g)", name, c.X, c.Y)).Msg("")
		}
		return
	}

	device, err := probe.CreateDevice(constants.ADB, sessionCfg.DeviceID)
	if err != nil {
		log.Error().Err(err).Msg("Creating device failed")
		os.Exit(2)
	}

	if hitCmd := handleDeviceCommands(ctx, device); hitCmd {
		return
	}

	fmt.Printf("Configuration: %s\n", utils.JsonIndent(sessionCfg))

	session := suite.NewSession(device, sessionCfg, suite.Options{
		BrightnessOnly: config.BrightnessOnly,
		TimeoutOnly:    config.TimeoutOnly,
		NoMerge:        config.NoMerge,
	})

	result, err := session.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Session failed")
		os.Exit(1)
	}
	if !result.Success() {
		log.Error().Msg("FAILED: one or more display settings tests failed")
		os.Exit(1)
	}
	log.Info().Msg("PASSED: all display settings tests passed")
}

func parseArgs() *Config {
	rootCmd.PersistentPreRunE = validateArgs

	cobra.CheckErr(rootCmd.Execute())

	return config
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if config.BrightnessOnly && config.TimeoutOnly {
		return fmt.Errorf("--brightness-only and --timeout-only are mutually exclusive")
	}
	return nil
}

func handleDeviceCommands(ctx context.Context, device probe.Device) bool {
	if config.ListDevices {
		devices, _ := device.ListDevices(ctx)
		if len(devices) == 0 {
			log.Info().Msg("No devices connected.")
		} else {
			log.Info().Msg("Connected devices:")
			log.Info().Msg(strings.Repeat("-", 60))
			for _, d := range devices {
				statusIcon := "OK"
				if d.Status != "device" {
					statusIcon = "!!"
				}
				modelInfo := ""
				if d.Model != "" {
					modelInfo = fmt.Sprintf(" (%s)", d.Model)
				}
				log.Info().Str("device", fmt.Sprintf("  %s %-30s [%s]%s", statusIcon, d.DeviceID, d.ConnectionType, modelInfo)).Msg("")
			}
		}
		return true
	}

	if config.Connect != "" {
		log.Info().Msgf("Connecting to %s...", config.Connect)
		message, err := device.Connect(ctx, config.Connect)
		if err != nil {
			log.Error().Str("msg", message).Msg("Connect failed")
		} else {
			log.Info().Str("msg", message).Msg("Connected")
		}
		return true
	}

	if config.Disconnect != "" {
		message, err := device.Disconnect(ctx, config.Disconnect)
		if err != nil {
			log.Error().Str("msg", message).Msg("Disconnect failed")
		} else {
			log.Info().Str("msg", message).Msg("Disconnected")
		}
		return true
	}

	return false
}
