package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/srg/shadows/internal/fixture"
	"github.com/srg/shadows/internal/report"
	"github.com/srg/shadows/pkg/config"
	"github.com/srg/shadows/shadow/bluetooth"
	"github.com/srg/shadows/shadow/signing"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <fixture>",
	Short: "Show simulated devices and signing records defined by a fixture",
	Long: `Loads a YAML or JSON fixture, applies it to fresh simulated devices and
signing records, and prints the state test code would observe.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var (
	inspectJSON    bool
	inspectLenient bool
	inspectDevice  string
	inspectPackage string
	inspectNoColor bool
)

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output as JSON")
	inspectCmd.Flags().BoolVar(&inspectLenient, "lenient", false, "Ignore unknown fixture keys")
	inspectCmd.Flags().StringVar(&inspectDevice, "device", "", "Only show the device with this address")
	inspectCmd.Flags().StringVar(&inspectPackage, "package", "", "Only show the package with this name")
	inspectCmd.Flags().BoolVar(&inspectNoColor, "no-color", false, "Disable colored output")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if inspectJSON {
		cfg.OutputFormat = config.FormatJSON
	}
	if inspectLenient {
		cfg.StrictFixtures = false
	}
	if inspectNoColor {
		cfg.Colors = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := configureLogger(cmd, cfg)
	if err != nil {
		return err
	}

	// All arguments validated - don't show usage on runtime errors
	cmd.SilenceUsage = true

	f, err := fixture.Load(args[0], cfg.StrictFixtures)
	if err != nil {
		return err
	}

	registry := bluetooth.NewRegistry(logger)
	packages, err := f.Apply(registry)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"fixture":  args[0],
		"devices":  len(f.Devices),
		"packages": len(packages),
	}).Info("Fixture applied")

	devices, packages, err := selectRecords(registry, packages)
	if err != nil {
		return err
	}

	r := report.New(devices, packages)
	if cfg.OutputFormat == config.FormatJSON {
		return r.WriteJSON(cmd.OutOrStdout())
	}

	if !cfg.Colors {
		previous := color.NoColor
		color.NoColor = true
		defer func() { color.NoColor = previous }()
	}
	return r.WriteText(cmd.OutOrStdout())
}

// selectRecords applies the --device and --package filters. When only one
// filter is set, the other record kind is omitted.
func selectRecords(registry *bluetooth.Registry, packages map[string]*signing.SigningInfo) ([]*bluetooth.BluetoothDevice, map[string]*signing.SigningInfo, error) {
	if inspectDevice == "" && inspectPackage == "" {
		return registry.Devices(), packages, nil
	}

	var devices []*bluetooth.BluetoothDevice
	if inspectDevice != "" {
		dev, ok := registry.Lookup(inspectDevice)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownDevice, inspectDevice)
		}
		devices = append(devices, dev)
	}

	selected := map[string]*signing.SigningInfo{}
	if inspectPackage != "" {
		info, ok := packages[inspectPackage]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownPackage, inspectPackage)
		}
		selected[inspectPackage] = info
	}
	return devices, selected, nil
}
