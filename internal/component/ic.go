package component

import (
	"fmt"
	"regexp"
	"strings"

	"partdb/internal/digikey"
)

// numUnitNames maps a unit count to the conventional name used in
// descriptions of multi-unit ICs.
var numUnitNames = map[string]string{
	"1": "Single",
	"2": "Dual",
	"4": "Quad",
}

func numUnitName(n string) string {
	if name, ok := numUnitNames[n]; ok {
		return name
	}
	return n + "-unit"
}

// OpAmp covers operational amplifiers.
var OpAmp = register(&Type{
	Table:        "opamp",
	FriendlyName: "Op Amp",
	IPNPrefixes:  []string{"OPAMP"},
	ExtraColumns: []string{"bandwidth", "num_units"},
	FootprintMap: map[string]string{
		`8-SOIC (0.154", 3.90mm Width)`: "Package_SO:SOIC-8_3.9x4.9mm_P1.27mm",
	},
	matchDigikey: func(p *digikey.Product) bool {
		return p.Category() == "Integrated Circuits (ICs)" &&
			strings.Contains(p.Subcategory(), "OP Amps")
	},
})

func init() { OpAmp.fromDigikey = opampFromDigikey }

func opampFromDigikey(p *digikey.Product, ask Prompter) (*Component, error) {
	c := newComponent(OpAmp)
	commonData(c, p)

	var slewRate, shortPackage string
	for _, param := range p.Parameters {
		switch param.Parameter {
		case "Gain Bandwidth Product":
			c.set("bandwidth", param.Value)
		case "Slew Rate":
			slewRate = param.Value
		case "Package / Case":
			c.set("package", param.Value)
		case "Supplier Device Package":
			shortPackage = param.Value
		case "Number of Circuits":
			c.set("num_units", param.Value)
		}
	}

	c.set("value", "${MPN}")
	c.set("keywords", "amplifier op amp")
	c.set("description", fmt.Sprintf("%s %s, %s opamp, %s",
		numUnitName(c.Get("num_units")), c.Get("bandwidth"), slewRate, shortPackage))
	c.SetIPN(ipnFromMfgMPN("OPAMP", c.Get("manufacturer"), c.Get("MPN")))

	c.set("kicad_symbol", askSymbol(ask, c.Get("DPN1")))
	determineFootprint(c, c.Get("package"), ask)

	return c, nil
}

// Comparator covers voltage comparators.
var Comparator = register(&Type{
	Table:        "comparator",
	FriendlyName: "Comparator",
	IPNPrefixes:  []string{"COMP"},
	ExtraColumns: []string{"output", "num_units"},
	FootprintMap: map[string]string{
		`8-SOIC (0.154", 3.90mm Width)`: "Package_SO:SOIC-8_3.9x4.9mm_P1.27mm",
	},
	matchDigikey: func(p *digikey.Product) bool {
		return p.Category() == "Integrated Circuits (ICs)" &&
			strings.Contains(p.Subcategory(), "Comparators")
	},
})

func init() { Comparator.fromDigikey = comparatorFromDigikey }

func comparatorFromDigikey(p *digikey.Product, ask Prompter) (*Component, error) {
	c := newComponent(Comparator)
	commonData(c, p)

	var shortPackage string
	for _, param := range p.Parameters {
		switch param.Parameter {
		case "Output Type":
			switch {
			case strings.Contains(param.Value, "Open-Collector"):
				c.set("output", "Open-Collector")
			case strings.Contains(param.Value, "Push-Pull"):
				c.set("output", "Push-Pull")
			default:
				c.set("output", param.Value)
			}
		case "Package / Case":
			c.set("package", param.Value)
		case "Supplier Device Package":
			shortPackage = param.Value
		case "Number of Elements":
			c.set("num_units", param.Value)
		}
	}

	c.set("value", "${MPN}")
	c.set("keywords", "comparator")
	c.set("description", fmt.Sprintf("%s comparator, %s output, %s",
		numUnitName(c.Get("num_units")), strings.ToLower(c.Get("output")), shortPackage))
	c.SetIPN(ipnFromMfgMPN("COMP", c.Get("manufacturer"), c.Get("MPN")))

	c.set("kicad_symbol", askSymbol(ask, c.Get("DPN1")))
	determineFootprint(c, c.Get("package"), ask)

	return c, nil
}

// Microcontroller covers MCUs.
var Microcontroller = register(&Type{
	Table:        "microcontroller",
	FriendlyName: "Microcontroller",
	IPNPrefixes:  []string{"MCU"},
	ExtraColumns: []string{"speed", "core"},
	FootprintMap: map[string]string{
		"8-SOIC":           "Package_SO:SOIC-8_3.9x4.9mm_P1.27mm",
		"14-TSSOP":         "Package_SO:TSSOP-14_4.4x5mm_P0.65mm",
		"20-TSSOP":         "Package_SO:TSSOP-20_4.4x6.5mm_P0.65mm",
		"32-LQFP (7x7)":    "Package_QFP:LQFP-32_7x7mm_P0.8mm",
		"48-LQFP (7x7)":    "Package_QFP:LQFP-48_7x7mm_P0.5mm",
		"64-LQFP (10x10)":  "Package_QFP:LQFP-64_10x10mm_P0.5mm",
		"80-LQFP (12x12)":  "Package_QFP:LQFP-80_12x12mm_P0.5mm",
		"80-LQFP (14x14)":  "Package_QFP:LQFP-80_14x14mm_P0.65mm",
		"100-LQFP (14x14)": "Package_QFP:LQFP-100_14x14mm_P0.5mm",
		"128-LQFP (14x14)": "Package_QFP:LQFP-128_14x14mm_P0.4mm",
		"144-LQFP (20x20)": "Package_QFP:LQFP-144_20x20mm_P0.5mm",
		"176-LQFP (24x24)": "Package_QFP:LQFP-176_24x24mm_P0.5mm",
		"208-LQFP (28x28)": "Package_QFP:LQFP-208_28x28mm_P0.5mm",
		"20-UFQFPN (3x3)":  "Package_DFN_QFN:ST_UFQFPN-20_3x3mm_P0.5mm",
		"28-UFQFPN (4x4)":  "Package_DFN_QFN:QFN-28_4x4mm_P0.5mm",
		"32-UFQFPN (5x5)":  "Package_DFN_QFN:QFN-32-1EP_5x5mm_P0.5mm_EP3.45x3.45mm",
		"36-VFQFPN (6x6)":  "Package_DFN_QFN:QFN-36-1EP_6x6mm_P0.5mm_EP4.1x4.1mm",
		"48-UFQFPN (7x7)":  "Package_DFN_QFN:QFN-48-1EP_7x7mm_P0.5mm_EP5.6x5.6mm",
		"68-VFQFPN (8x8)":  "Package_DFN_QFN:QFN-68-1EP_8x8mm_P0.4mm_EP6.4x6.4mm",
	},
	matchDigikey: func(p *digikey.Product) bool {
		return p.Category() == "Integrated Circuits (ICs)" &&
			strings.Contains(p.Subcategory(), "Microcontrollers")
	},
})

func init() { Microcontroller.fromDigikey = microcontrollerFromDigikey }

var pincountRe = regexp.MustCompile(`^\d*`)

// processPincount extracts the pincount from a package name, e.g. "32" from
// "32-LQFP".
func processPincount(pkg string) string {
	return pincountRe.FindString(pkg)
}

var coreSanitizeRe = regexp.MustCompile(`[^\w \-]`)

// processCore strips characters that are not alphanumeric, underscores,
// dashes, or spaces (for example ® or ™) from a core name.
func processCore(param string) string {
	return coreSanitizeRe.ReplaceAllString(param, "")
}

func microcontrollerFromDigikey(p *digikey.Product, ask Prompter) (*Component, error) {
	c := newComponent(Microcontroller)
	commonData(c, p)

	var pincount string
	for _, param := range p.Parameters {
		switch param.Parameter {
		case "Supplier Device Package":
			c.set("package", param.Value)
			pincount = processPincount(param.Value)
		case "Core Processor":
			c.set("core", processCore(param.Value))
		case "Speed":
			c.set("speed", param.Value)
		}
	}

	c.set("value", "${MPN}")
	c.set("keywords", "mcu microcontroller uc")
	c.set("description", fmt.Sprintf("%s pin %s MCU, %s, %s",
		pincount, c.Get("core"), c.Get("speed"), c.Get("package")))
	c.SetIPN(ipnFromMfgMPN("MCU", c.Get("manufacturer"), c.Get("MPN")))

	c.set("kicad_symbol", askSymbol(ask, c.Get("DPN1")))
	determineFootprint(c, c.Get("package"), ask)

	return c, nil
}

// VoltageRegulator covers linear voltage regulators, fixed and adjustable.
var VoltageRegulator = register(&Type{
	Table:        "voltage_regulator",
	FriendlyName: "Voltage Regulator",
	IPNPrefixes:  []string{"VREG"},
	ExtraColumns: []string{"voltage", "current"},
	FootprintMap: map[string]string{
		"TO-220-3": "Package_TO_SOT_THT:TO-220-3_Vertical",
	},
	matchDigikey: func(p *digikey.Product) bool {
		return p.Category() == "Integrated Circuits (ICs)" &&
			strings.Contains(p.Subcategory(), "Voltage Regulators")
	},
})

func init() { VoltageRegulator.fromDigikey = vregFromDigikey }

func vregFromDigikey(p *digikey.Product, ask Prompter) (*Component, error) {
	c := newComponent(VoltageRegulator)
	commonData(c, p)

	var vinMax, voutMin, voutMax string
	outputType := "adjustable"
	for _, param := range p.Parameters {
		switch param.Parameter {
		case "Supplier Device Package":
			c.set("package", param.Value)
		case "Voltage - Input (Max)":
			vinMax = param.Value
		case "Voltage - Output (Min/Fixed)":
			voutMin = param.Value
		case "Voltage - Output (Max)":
			voutMax = param.Value
		case "Current - Output":
			c.set("current", param.Value)
		case "Output Type":
			if param.Value == "Fixed" {
				outputType = "fixed"
			}
		}
	}

	if outputType == "fixed" {
		c.set("voltage", voutMin)
	} else {
		c.set("voltage", voutMin+" - "+voutMax)
	}

	c.set("value", "${MPN}")
	c.set("keywords", "voltage regulator vreg")
	c.set("description", fmt.Sprintf("%s %s, %s @%s out, %s in, %s voltage regulator, %s",
		c.Get("manufacturer"), c.Get("MPN"), c.Get("voltage"), c.Get("current"),
		vinMax, outputType, c.Get("package")))
	c.SetIPN(ipnFromMfgMPN("VREG", c.Get("manufacturer"), c.Get("MPN")))

	c.set("kicad_symbol", askSymbol(ask, c.Get("DPN1")))
	determineFootprint(c, c.Get("package"), ask)

	return c, nil
}
