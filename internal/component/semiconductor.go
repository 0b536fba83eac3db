package component

import (
	"fmt"
	"regexp"
	"strings"

	"partdb/internal/digikey"
)

// Diode covers rectifier, schottky, and zener diodes, including arrays.
var Diode = register(&Type{
	Table:        "diode",
	FriendlyName: "Diode",
	IPNPrefixes:  []string{"D"},
	ExtraColumns: []string{"diode_type", "reverse_voltage", "current_or_power", "diode_configuration"},
	FootprintMap: map[string]string{
		"DO-35":   "Diode_THT:D_DO-35_SOD27_P7.62mm_Horizontal",
		"SOD-123": "Diode_SMD:D_SOD-123",
		"SOD-323": "Diode_SMD:D_SOD-323",
		"SOT-23":  "Package_TO_SOT_SMD:SOT-23",
	},
	matchDigikey: func(p *digikey.Product) bool {
		sub := p.Subcategory()
		return p.Category() == "Discrete Semiconductor Products" &&
			(strings.Contains(sub, "Diodes - Rectifiers") || strings.Contains(sub, "Diodes - Zener"))
	},
})

func init() { Diode.fromDigikey = diodeFromDigikey }

// diodeSymbols maps single-diode types onto dedicated schematic symbols.
var diodeSymbols = map[string]string{
	"standard": "Device:D",
	"schottky": "Device:D_Schottky",
	"zener":    "Device:D_Zener",
}

func diodeFromDigikey(p *digikey.Product, ask Prompter) (*Component, error) {
	c := newComponent(Diode)
	commonData(c, p)

	isArray := false
	for _, param := range p.Parameters {
		switch param.Parameter {
		case "Supplier Device Package":
			c.set("package", param.Value)
		case "Technology":
			c.set("diode_type", strings.ToLower(param.Value))
		case "Voltage - DC Reverse (Vr) (Max)":
			c.set("reverse_voltage", processValueWithUnit(param.Value))
		case "Current - Average Rectified (Io)",
			"Power - Max",
			"Current - Average Rectified (Io) (per Diode)":
			c.set("current_or_power", processValueWithUnit(param.Value))
		case "Voltage - Zener (Nom) (Vz)":
			c.set("reverse_voltage", processValueWithUnit(param.Value))
			c.set("diode_type", "zener")
		case "Diode Configuration":
			c.set("diode_configuration", strings.ToLower(param.Value))
			isArray = true
		}
	}

	c.set("value", "${MPN}")
	keywords := "diode"
	description := fmt.Sprintf("%s, %s %s diode, ",
		c.Get("reverse_voltage"), c.Get("current_or_power"), c.Get("diode_type"))
	if isArray {
		description += c.Get("diode_configuration") + ", "
		keywords += " array"
	}
	description += c.Get("package")
	c.set("description", description)
	c.set("keywords", keywords)
	c.SetIPN(ipnFromMfgMPN("D", c.Get("manufacturer"), c.Get("MPN")))

	if sym, ok := diodeSymbols[c.Get("diode_type")]; ok && !isArray {
		c.set("kicad_symbol", sym)
	} else {
		c.set("kicad_symbol", askSymbol(ask, c.Get("DPN1")))
	}
	determineFootprint(c, c.Get("package"), ask)

	return c, nil
}

// LED covers discrete, multi-color, and addressable LEDs.
var LED = register(&Type{
	Table:        "led",
	FriendlyName: "LED",
	IPNPrefixes:  []string{"LED"},
	ExtraColumns: []string{"color", "forward_voltage", "diode_configuration"},
	FootprintMap: map[string]string{
		"0603": "LED_SMD:LED_0603_1608Metric",
		"5mm":  "LED_THT:LED_D5.0mm",
	},
	matchDigikey: func(p *digikey.Product) bool {
		return p.Category() == "Optoelectronics"
	},
})

func init() { LED.fromDigikey = ledFromDigikey }

// ledPackageNames maps known through-hole package names to friendlier
// short forms.
var ledPackageNames = map[string]string{
	"T-1 3/4": "5mm",
}

// processLEDPackage returns a sanitized LED package name: long SMD package
// names are shortened ("0603 (1608 Metric)" becomes "0603") and some common
// through-hole names are made friendlier ("T-1 3/4" becomes "5mm").
func processLEDPackage(param string) string {
	if short := processSMDPackage(param); short != param {
		return short
	}
	if short, ok := ledPackageNames[param]; ok {
		return short
	}
	return param
}

var (
	ledColorParenRe = regexp.MustCompile(` \(.*\)`)
	ledColorSepRe   = regexp.MustCompile(`[, ]+`)
	ledDimRe        = regexp.MustCompile(`(\d+\.?\d*)[\smLW]*x\s*(\d+\.?\d*)\s*mm`)
)

// processLEDColor returns a compact color string, e.g. "RedGreenBlue" from
// "Red, Green, Blue (RGB)".
func processLEDColor(param string) string {
	short := ledColorParenRe.ReplaceAllString(param, "")
	return ledColorSepRe.ReplaceAllString(short, "")
}

// processLEDDimension returns a dimension string with one digit after each
// decimal point, e.g. "5.0x5.0mm" from "5.00mm L x 5.00mm W", or "-" when
// no dimensions are found.
func processLEDDimension(param string) string {
	m := ledDimRe.FindStringSubmatch(param)
	if m == nil {
		return "-"
	}
	var d1, d2 float64
	fmt.Sscanf(m[1], "%f", &d1)
	fmt.Sscanf(m[2], "%f", &d2)
	return fmt.Sprintf("%.1fx%.1fmm", d1, d2)
}

func ledFromDigikey(p *digikey.Product, ask Prompter) (*Component, error) {
	c := newComponent(LED)
	commonData(c, p)

	addressable := false
	var supplierPackage, sizeDimension string
	havePackage := false
	for _, param := range p.Parameters {
		switch param.Parameter {
		case "Package / Case":
			c.set("package", processLEDPackage(param.Value))
			havePackage = true
		case "Supplier Device Package":
			supplierPackage = processLEDPackage(param.Value)
		case "Size / Dimension":
			sizeDimension = param.Value
		case "Color":
			c.set("color", processLEDColor(param.Value))
		case "Voltage - Forward (Vf) (Typ)":
			c.set("forward_voltage", param.Value)
		case "Interface":
			addressable = true
		case "Configuration":
			if param.Value != "Standard" && param.Value != "Discrete" {
				c.set("diode_configuration", param.Value)
			}
		}
	}

	if !havePackage {
		c.set("package", processLEDDimension(sizeDimension))
	}
	if c.Get("package") == "Radial - 4 Leads" {
		c.set("package", supplierPackage)
	}

	c.set("value", "${Color}")
	c.set("keywords", "led")

	description := c.Get("color") + " "
	if addressable {
		description += "addressable "
	}
	description += "LED, "
	if cfg := c.Get("diode_configuration"); cfg != "" {
		description += strings.ToLower(cfg) + ", "
	}
	description += c.Get("package")
	c.set("description", description)
	c.SetIPN(ipnFromMfgMPN("LED", c.Get("manufacturer"), c.Get("MPN")))

	if c.Get("diode_configuration") == "" && !addressable {
		c.set("kicad_symbol", "Device:LED")
	} else {
		c.set("kicad_symbol", askSymbol(ask, c.Get("DPN1")))
	}
	// only single-color LEDs get an automatic footprint
	if c.Get("diode_configuration") == "" {
		determineFootprint(c, c.Get("package"), ask)
	} else {
		c.set("kicad_footprint", askFootprint(ask, c.Get("DPN1")))
	}

	return c, nil
}

// BJT covers bipolar junction transistors, single and arrays. NPN parts use
// the NPN prefix, PNP parts use PNP.
var BJT = register(&Type{
	Table:        "transistor_bjt",
	FriendlyName: "BJT",
	IPNPrefixes:  []string{"NPN", "PNP"},
	ExtraColumns: []string{"bjt_type", "vce_max", "ic_max", "power_max", "ft"},
	FootprintMap: map[string]string{
		"TO-92-3": "Package_TO_SOT_THT:TO-92_Inline",
	},
	matchDigikey: func(p *digikey.Product) bool {
		return p.Category() == "Discrete Semiconductor Products" &&
			strings.Contains(p.Subcategory(), "Bipolar (BJT)")
	},
})

func init() { BJT.fromDigikey = bjtFromDigikey }

var transistorTypeRe = regexp.MustCompile(`(\d*)\s*(NPN|PNP)[,\s]*(\d*)\s*(NPN|PNP)?`)

// processTransistorType compacts a "Transistor Type" parameter, e.g. "NPN"
// stays "NPN" and "4 NPN, 1 PNP Darlington" becomes "4xNPN-1xPNP". The
// second return value reports whether the part is a transistor array.
func processTransistorType(param string) (string, bool) {
	m := transistorTypeRe.FindStringSubmatch(param)
	if m == nil {
		return "", false
	}
	var sb strings.Builder
	array := false
	if m[2] != "" {
		if m[1] != "" {
			array = true
			sb.WriteString(m[1] + "x")
		}
		sb.WriteString(m[2])
	}
	if m[4] != "" {
		array = true
		sb.WriteString("-")
		if m[3] != "" {
			sb.WriteString(m[3] + "x")
		}
		sb.WriteString(m[4])
	}
	return sb.String(), array
}

func bjtFromDigikey(p *digikey.Product, ask Prompter) (*Component, error) {
	c := newComponent(BJT)
	commonData(c, p)

	isArray := false
	prefix := "NPN"
	for _, param := range p.Parameters {
		switch param.Parameter {
		case "Transistor Type":
			bjtType, array := processTransistorType(param.Value)
			c.set("bjt_type", bjtType)
			isArray = array
			if !strings.Contains(param.Value, "NPN") {
				prefix = "PNP"
			}
		case "Voltage - Collector Emitter Breakdown (Max)":
			c.set("vce_max", processValueWithUnit(param.Value))
		case "Current - Collector (Ic) (Max)":
			c.set("ic_max", processValueWithUnit(param.Value))
		case "Power - Max":
			c.set("power_max", processValueWithUnit(param.Value))
		case "Frequency - Transition":
			c.set("ft", processValueWithUnit(param.Value))
		case "Supplier Device Package":
			c.set("package", param.Value)
		}
	}

	c.set("value", "${MPN}")
	c.set("keywords", "bjt transistor "+strings.ToLower(prefix))
	arraySuffix := ""
	if isArray {
		arraySuffix = " array"
	}
	c.set("description", fmt.Sprintf("%s Ic, %s Vce, %s, %s %s BJT%s, %s",
		c.Get("ic_max"), c.Get("vce_max"), c.Get("power_max"), c.Get("ft"),
		c.Get("bjt_type"), arraySuffix, c.Get("package")))
	c.SetIPN(ipnFromMfgMPN(prefix, c.Get("manufacturer"), c.Get("MPN")))

	c.set("kicad_symbol", askSymbol(ask, c.Get("DPN1")))
	c.set("kicad_footprint", askFootprint(ask, c.Get("DPN1")))

	return c, nil
}
