// Package report renders shadow records as JSON snapshots or human-readable text.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/go-ble/ble"
	"github.com/srg/shadows/shadow/bluetooth"
	"github.com/srg/shadows/shadow/signing"
)

// UUIDReport is one advertised service UUID.
type UUIDReport struct {
	UUID      string `json:"uuid"`
	KnownName string `json:"known_name,omitempty"`
}

// GattReport is one GATT connection handle.
type GattReport struct {
	Handle      string `json:"handle"`
	State       string `json:"state"`
	AutoConnect bool   `json:"auto_connect"`
	Transport   string `json:"transport"`
	Closed      bool   `json:"closed"`
}

// DeviceReport is a snapshot of a BluetoothDevice.
type DeviceReport struct {
	Address           string       `json:"address"`
	Name              *string      `json:"name"`
	Type              string       `json:"type"`
	BondState         string       `json:"bond_state"`
	UUIDs             []UUIDReport `json:"uuids"`
	BatteryLevel      int          `json:"battery_level"`
	FetchAttemptCount int          `json:"fetch_attempt_count"`
	GattConnections   []GattReport `json:"gatt_connections"`
}

// PackageReport is a snapshot of a SigningInfo.
type PackageReport struct {
	Name                       string   `json:"name"`
	Signers                    []string `json:"signers"`
	HasMultipleSigners         bool     `json:"has_multiple_signers"`
	HasPastSigningCertificates bool     `json:"has_past_signing_certificates"`
	CertificateHistory         []string `json:"certificate_history"`
}

// Report groups device and package snapshots.
type Report struct {
	Devices  []DeviceReport  `json:"devices"`
	Packages []PackageReport `json:"packages"`
}

// NewDeviceReport snapshots dev. Absent name and UUIDs stay null.
func NewDeviceReport(dev *bluetooth.BluetoothDevice) DeviceReport {
	r := DeviceReport{
		Address:           dev.Address(),
		Type:              dev.Type().String(),
		BondState:         dev.BondState().String(),
		BatteryLevel:      dev.BatteryLevel(),
		FetchAttemptCount: dev.FetchAttemptCount(),
		GattConnections:   []GattReport{},
	}
	if name, ok := dev.Name(); ok {
		r.Name = &name
	}
	if uuids := dev.UUIDs(); uuids != nil {
		r.UUIDs = make([]UUIDReport, 0, len(uuids))
		for _, u := range uuids {
			r.UUIDs = append(r.UUIDs, UUIDReport{UUID: u.String(), KnownName: ble.Name(u)})
		}
	}
	for _, g := range dev.GattConnections() {
		r.GattConnections = append(r.GattConnections, GattReport{
			Handle:      g.Handle().String(),
			State:       g.ConnectionState().String(),
			AutoConnect: g.AutoConnect(),
			Transport:   g.Transport().String(),
			Closed:      g.IsClosed(),
		})
	}
	return r
}

// NewPackageReport snapshots info using certificate digests. Absent lists stay null.
func NewPackageReport(name string, info *signing.SigningInfo) PackageReport {
	return PackageReport{
		Name:                       name,
		Signers:                    digests(info.APKContentsSigners()),
		HasMultipleSigners:         info.HasMultipleSigners(),
		HasPastSigningCertificates: info.HasPastSigningCertificates(),
		CertificateHistory:         digests(info.SigningCertificateHistory()),
	}
}

func digests(sigs []signing.Signature) []string {
	if sigs == nil {
		return nil
	}
	out := make([]string, 0, len(sigs))
	for _, s := range sigs {
		out = append(out, s.Digest())
	}
	return out
}

// New builds a report from devices and packages. Packages are ordered by name.
func New(devices []*bluetooth.BluetoothDevice, packages map[string]*signing.SigningInfo) *Report {
	r := &Report{
		Devices:  make([]DeviceReport, 0, len(devices)),
		Packages: make([]PackageReport, 0, len(packages)),
	}
	for _, dev := range devices {
		r.Devices = append(r.Devices, NewDeviceReport(dev))
	}

	names := make([]string, 0, len(packages))
	for name := range packages {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.Packages = append(r.Packages, NewPackageReport(name, packages[name]))
	}
	return r
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText writes the report as plain text. Headings are colored unless
// color output is disabled globally (color.NoColor).
func (r *Report) WriteText(w io.Writer) error {
	heading := color.New(color.FgCyan, color.Bold)
	good := color.New(color.FgGreen)
	dim := color.New(color.Faint)

	var b strings.Builder
	for _, d := range r.Devices {
		name := "<absent>"
		if d.Name != nil {
			name = *d.Name
		}
		fmt.Fprintf(&b, "%s %s\n", heading.Sprint("Device"), d.Address)
		fmt.Fprintf(&b, "  Name:       %s\n", name)
		fmt.Fprintf(&b, "  Type:       %s\n", d.Type)
		fmt.Fprintf(&b, "  Bond state: %s\n", d.BondState)
		if d.UUIDs == nil {
			fmt.Fprintf(&b, "  UUIDs:      %s\n", dim.Sprint("<absent>"))
		} else {
			fmt.Fprintf(&b, "  UUIDs:      %d\n", len(d.UUIDs))
			for _, u := range d.UUIDs {
				if u.KnownName != "" {
					fmt.Fprintf(&b, "    - %s (%s)\n", u.UUID, u.KnownName)
				} else {
					fmt.Fprintf(&b, "    - %s\n", u.UUID)
				}
			}
		}
		fmt.Fprintf(&b, "  GATT:       %d connection(s)\n", len(d.GattConnections))
	}

	for _, p := range r.Packages {
		fmt.Fprintf(&b, "%s %s\n", heading.Sprint("Package"), p.Name)
		writeDigests(&b, "  Signers:   ", p.Signers, dim)
		fmt.Fprintf(&b, "  Multiple signers:     %s\n", yesNo(p.HasMultipleSigners, good))
		fmt.Fprintf(&b, "  Past certificates:    %s\n", yesNo(p.HasPastSigningCertificates, good))
		writeDigests(&b, "  History:   ", p.CertificateHistory, dim)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeDigests(b *strings.Builder, label string, values []string, dim *color.Color) {
	if values == nil {
		fmt.Fprintf(b, "%s%s\n", label, dim.Sprint("<absent>"))
		return
	}
	fmt.Fprintf(b, "%s%d\n", label, len(values))
	for _, v := range values {
		fmt.Fprintf(b, "    - %s\n", v)
	}
}

func yesNo(v bool, good *color.Color) string {
	if v {
		return good.Sprint("yes")
	}
	return "no"
}
