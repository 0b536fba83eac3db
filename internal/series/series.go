// Package series generates standard-value component sets for seeding a
// part database: E96 resistors, E12/E24 ceramic capacitors, and single-row
// pin headers.
package series

import (
	"fmt"
	"strconv"

	"partdb/internal/component"
)

// Standard E-series preferred values, one decade each.
var (
	E12 = []float64{1.0, 1.2, 1.5, 1.8, 2.2, 2.7, 3.3, 3.9, 4.7, 5.6, 6.8, 8.2}

	E24 = []float64{
		1.0, 1.1, 1.2, 1.3, 1.5, 1.6, 1.8, 2.0, 2.2, 2.4, 2.7, 3.0, 3.3, 3.6, 3.9,
		4.3, 4.7, 5.1, 5.6, 6.2, 6.8, 7.5, 8.2, 9.1,
	}

	E96 = []float64{
		1, 1.02, 1.05, 1.07, 1.1, 1.13, 1.15, 1.18, 1.21, 1.24, 1.27, 1.3, 1.33,
		1.37, 1.4, 1.43, 1.47, 1.5, 1.54, 1.58, 1.62, 1.65, 1.69, 1.74, 1.78, 1.82,
		1.87, 1.91, 1.96, 2, 2.05, 2.1, 2.15, 2.21, 2.26, 2.32, 2.37, 2.43, 2.49,
		2.55, 2.61, 2.67, 2.74, 2.8, 2.87, 2.94, 3.01, 3.09, 3.16, 3.24, 3.32, 3.4,
		3.48, 3.57, 3.65, 3.74, 3.83, 3.92, 4.02, 4.12, 4.22, 4.32, 4.42, 4.53,
		4.64, 4.75, 4.87, 4.99, 5.11, 5.23, 5.36, 5.49, 5.62, 5.76, 5.9, 6.04,
		6.19, 6.34, 6.49, 6.65, 6.81, 6.98, 7.15, 7.32, 7.5, 7.68, 7.87, 8.06,
		8.25, 8.45, 8.66, 8.87, 9.09, 9.31, 9.53, 9.76,
	}
)

var (
	resistorMultipliers  = []float64{1, 10, 100, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8}
	capacitorMultipliers = []float64{1e-11, 1e-10, 1e-9, 1e-8, 1e-7, 1e-6}
)

// siPrefixes maps magnitude thresholds to SI prefixes, largest first.
var siPrefixes = []struct {
	threshold float64
	prefix    string
}{
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
	{1e0, ""},
	{1e-3, "m"},
	{1e-6, "μ"},
	{1e-9, "n"},
	{1e-12, "p"},
	{1e-15, "f"},
}

// Packages are the chip packages the generators emit parts for.
var Packages = []string{"0603", "0805", "1206"}

// resistor power ratings by chip package
var powerRatings = map[string]string{
	"0603": "0.1W",
	"0805": "0.125W",
	"1206": "0.25W",
}

// ValueToString formats a component value with an SI prefix and three
// significant digits, e.g. 4700 becomes "4.7k".
func ValueToString(value float64) string {
	for _, p := range siPrefixes {
		if value >= p.threshold {
			return strconv.FormatFloat(value/p.threshold, 'g', 3, 64) + p.prefix
		}
	}
	return strconv.FormatFloat(value, 'g', 3, 64)
}

// Resistors generates thin film 1% E96 resistors across all decades and
// packages, plus a zero-ohm jumper per package.
func Resistors() ([]*component.Component, error) {
	var components []*component.Component
	for _, pkg := range Packages {
		power := powerRatings[pkg]

		jumper, err := component.NewResistor("0", "1%", power, "Thin Film", pkg)
		if err != nil {
			return nil, err
		}
		components = append(components, jumper)

		for _, m := range resistorMultipliers {
			for _, val := range E96 {
				r, err := component.NewResistor(
					ValueToString(val*m), "1%", power, "Thin Film", pkg)
				if err != nil {
					return nil, err
				}
				components = append(components, r)
			}
		}
	}
	return components, nil
}

// Capacitors generates 50V ceramic capacitors: E24 C0G/NP0 5% parts up to
// and including 10nF, then E12 X7R 10% parts above that.
func Capacitors() ([]*component.Component, error) {
	var components []*component.Component
	add := func(raw float64, dielectric, tolerance, pkg string) error {
		c, err := component.NewCapacitor(
			ValueToString(raw), dielectric, tolerance, "50V", pkg)
		if err != nil {
			return err
		}
		components = append(components, c)
		return nil
	}

	for _, pkg := range Packages {
		for _, m := range capacitorMultipliers {
			for _, val := range E24 {
				raw := val * m
				if raw > 10e-9 {
					break
				}
				if err := add(raw, "C0G, NP0", "5%", pkg); err != nil {
					return nil, err
				}
			}
			for _, val := range E12 {
				raw := val * m
				if raw <= 10e-9 {
					continue
				}
				if err := add(raw, "X7R", "10%", pkg); err != nil {
					return nil, err
				}
			}
		}
	}
	return components, nil
}

// PinHeaders generates single-row 2.54mm pin headers from 1x1 up to 1x16.
func PinHeaders() []*component.Component {
	var components []*component.Component
	for cols := 1; cols <= 16; cols++ {
		components = append(components, component.NewPinHeader(1, cols))
	}
	return components
}

// Generate dispatches on the series kind name used by the CLI.
func Generate(kind string) ([]*component.Component, error) {
	switch kind {
	case "resistor", "resistors":
		return Resistors()
	case "capacitor", "capacitors":
		return Capacitors()
	case "pinheader", "pinheaders":
		return PinHeaders(), nil
	default:
		return nil, fmt.Errorf("unknown series kind %q", kind)
	}
}

// CSV renders components of a single type as CSV with a header row.
func CSV(components []*component.Component) string {
	if len(components) == 0 {
		return ""
	}
	out := components[0].ToCSV(true, true)
	for _, c := range components[1:] {
		out += c.ToCSV(false, true)
	}
	return out
}
