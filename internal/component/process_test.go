package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessResistance(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1", "1"},
		{"10", "10"},
		{"1.0", "1.0"},
		{"1 Ohm", "1"},
		{"1Ohm", "1"},
		{"1R", "1"},
		{"1k", "1K"},
		{"1K", "1K"},
		{"1k Ohm", "1K"},
		{"1kOhm", "1K"},
		{"1.6 kOhms", "1.6K"},
		{"10kOhm", "10K"},
		{"1.00kOhm", "1.00K"},
		{"1m", "1m"},
		{"1M", "1M"},
		{"1G", "1G"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, processResistance(tc.in))
		})
	}
}

func TestProcessTolerance(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1", "1%"},
		{"1%", "1%"},
		{"10%", "10%"},
		{"1.00%", "1.00%"},
		{"±1%", "1%"},
		{"something weird", "-"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, processTolerance(tc.in))
		})
	}
}

func TestProcessManufacturer(t *testing.T) {
	assert.Equal(t, "Molex", processManufacturer("Molex"))
	assert.Equal(t, "Amphenol", processManufacturer("Amphenol ICC (FCI)"))
}

func TestProcessPower(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1", "1W"},
		{"1W", "1W"},
		{"10", "10W"},
		{"1.00", "1.00W"},
		{"something weird", "-"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, processPower(tc.in))
		})
	}
}

func TestProcessComposition(t *testing.T) {
	assert.Equal(t, "ThinFilm", processComposition("ThinFilm"))
	assert.Equal(t, "ThinFilm", processComposition("Thin Film"))
}

func TestProcessCapacitance(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1nF", "1nF"},
		{"1n", "1nF"},
		{"1 nF", "1nF"},
		{"4.7nF", "4.7nF"},
		{"1fF", "1fF"},
		{"1f", "1fF"},
		{"1pF", "1pF"},
		{"1PF", "1pF"},
		{"1NF", "1nF"},
		{"1uF", "1μF"},
		{"1UF", "1μF"},
		{"1μF", "1μF"},
		{"1µF", "1μF"},
		{"1mF", "1mF"},
		{"1MF", "1mF"},
		{"1000pF", "1nF"},
		{"1500nF", "1.5μF"},
		{"999nF", "999nF"},
		{"0.999uF", "999nF"},
		{"0.1fF", "0.1fF"},
		{"1000mF", "1000mF"},
		{"1000000mF", "1000000mF"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, processCapacitance(tc.in))
		})
	}
}

func TestProcessVoltage(t *testing.T) {
	cases := []struct{ in, want string }{
		{"5V", "5V"},
		{"50V", "50V"},
		{"50 V", "50V"},
		{"50.0 V", "50.0V"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, processVoltage(tc.in))
		})
	}
}

func TestProcessPolarization(t *testing.T) {
	pol, err := processPolarization("Bi-Polar")
	assert.NoError(t, err)
	assert.Equal(t, "Unpolarized", pol)

	pol, err = processPolarization("Polar")
	assert.NoError(t, err)
	assert.Equal(t, "Polarized", pol)

	_, err = processPolarization("test")
	assert.EqualError(t, err, `unknown capacitor polarization "test"`)
}

func TestProcessSMDPackage(t *testing.T) {
	cases := []struct{ in, want string }{
		{"0805 (2012 Metric)", "0805"},
		{"Radial, Can", "Radial, Can"},
		{"2-LCC", "2-LCC"},
		{"A1234", "A1234"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, processSMDPackage(tc.in))
		})
	}
}

func TestProcessDimension(t *testing.T) {
	cases := []struct{ in, want string }{
		{"12.7in (5.00mm)", "5.00mm"},
		{"25.4in (10.00 mm)", "10.0mm"},
		{"5 mm", "5.00mm"},
		{"no metric here", "-"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, processDimension(tc.in))
		})
	}
}

func TestProcessPincount(t *testing.T) {
	assert.Equal(t, "48", processPincount("48-LQFP"))
}

func TestProcessCore(t *testing.T) {
	assert.Equal(t, "ARM Cortex-M0", processCore("ARM® Cortex®-M0"))
}

func TestProcessLEDPackage(t *testing.T) {
	cases := []struct{ in, want string }{
		{"0603 (1608 Metric)", "0603"},
		{"T-1 3/4", "5mm"},
		{"2-LCC", "2-LCC"},
		{"A1234", "A1234"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, processLEDPackage(tc.in))
		})
	}
}

func TestProcessLEDColor(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Orange", "Orange"},
		{"Red, Green, Blue (RGB)", "RedGreenBlue"},
		{"Yellow, Yellow-Green", "YellowYellow-Green"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, processLEDColor(tc.in))
		})
	}
}

func TestProcessLEDDimension(t *testing.T) {
	cases := []struct{ in, want string }{
		{"5.00x5.00mm", "5.0x5.0mm"},
		{"12.70 x 12.70 mm", "12.7x12.7mm"},
		{"5.00mm L x 5.00mm W", "5.0x5.0mm"},
		{"wasdf", "-"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, processLEDDimension(tc.in))
		})
	}
}

func TestProcessTransistorType(t *testing.T) {
	cases := []struct {
		in    string
		want  string
		array bool
	}{
		{"NPN", "NPN", false},
		{"PNP", "PNP", false},
		{"4 NPN (Quad)", "4xNPN", true},
		{"NPN, PNP", "NPN-PNP", true},
		{"2 NPN Darlington (Dual)", "2xNPN", true},
		{"4 NPN, 1 PNP Darlington", "4xNPN-1xPNP", true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			typ, array := processTransistorType(tc.in)
			assert.Equal(t, tc.want, typ)
			assert.Equal(t, tc.array, array)
		})
	}
}
