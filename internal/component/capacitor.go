package component

import (
	"fmt"
	"strings"

	"partdb/internal/digikey"
)

// Capacitor covers ceramic chip capacitors and aluminum electrolytics.
// Polarized parts use the CP prefix, unpolarized parts use C.
var Capacitor = register(&Type{
	Table:        "capacitor",
	FriendlyName: "Capacitor",
	IPNPrefixes:  []string{"C", "CP"},
	ExtraColumns: []string{"capacitance", "tolerance", "voltage", "dielectric"},
	FootprintMap: map[string]string{
		"0201": "Capacitor_SMD:C_0201_0603Metric",
		"0402": "Capacitor_SMD:C_0402_1005Metric",
		"0603": "Capacitor_SMD:C_0603_1608Metric",
		"0805": "Capacitor_SMD:C_0805_2012Metric",
		"1206": "Capacitor_SMD:C_1206_3216Metric",
		"1210": "Capacitor_SMD:C_1210_3225Metric",
	},
	matchDigikey: func(p *digikey.Product) bool {
		return p.Category() == "Capacitors"
	},
})

func init() { Capacitor.fromDigikey = capacitorFromDigikey }

func capacitorFromDigikey(p *digikey.Product, ask Prompter) (*Component, error) {
	c := newComponent(Capacitor)
	commonData(c, p)

	var polarization string
	dims := map[string]string{}
	for _, param := range p.Parameters {
		switch param.Parameter {
		case "Capacitance":
			c.set("capacitance", processCapacitance(param.Value))
		case "Tolerance":
			c.set("tolerance", processTolerance(param.Value))
		case "Voltage - Rated":
			c.set("voltage", processVoltage(param.Value))
		case "Temperature Coefficient":
			c.set("dielectric", param.Value)
		case "Package / Case":
			c.set("package", processSMDPackage(param.Value))
		case "Polarization":
			pol, err := processPolarization(param.Value)
			if err != nil {
				return nil, err
			}
			polarization = pol
		case "Lead Spacing":
			dims["pitch"] = processDimension(param.Value)
		case "Size / Dimension":
			dims["diameter"] = processDimension(param.Value)
		case "Height - Seated (Max)":
			dims["height"] = processDimension(param.Value)
		}
	}

	switch p.Family.Value {
	case "Ceramic Capacitors":
		polarization = "Unpolarized"
	case "Aluminum Electrolytic Capacitors":
		c.set("dielectric", polarization+" Electrolytic")
	default:
		return nil, fmt.Errorf("capacitor family %q is not implemented", p.Family.Value)
	}

	c.set("value", "${Capacitance}")
	c.set("kicad_symbol", capacitorSymbol(polarization))

	packageShort, packageDims, err := capacitorFootprint(c, polarization, dims, ask)
	if err != nil {
		return nil, err
	}

	capacitorMetadata(c, polarization, packageShort, packageDims)
	return c, nil
}

// capacitorSymbol picks the schematic symbol matching the polarization.
func capacitorSymbol(polarization string) string {
	if polarization == "Unpolarized" {
		return "Device:C"
	}
	return "Device:C_Polarized_US"
}

// capacitorFootprint resolves the footprint for chip packages via the
// footprint map; radial can packages additionally get a dimension-encoded
// package name like CP_Radial_D5.00mm_H10.0mm_P2.00mm. The resolved short
// package name and dimension string are returned for use in metadata.
func capacitorFootprint(c *Component, polarization string, dims map[string]string, ask Prompter) (string, string, error) {
	pkg := c.Get("package")
	if fp, ok := c.typ.FootprintMap[pkg]; ok {
		c.set("kicad_footprint", fp)
		return pkg, "", nil
	}

	c.set("kicad_footprint", askFootprint(ask, c.Get("DPN1")))

	diameter, height, pitch := dims["diameter"], dims["height"], dims["pitch"]
	if diameter == "" || height == "" {
		return "", "", fmt.Errorf("unknown package dimensions for part %s", c.Get("DPN1"))
	}

	var packageShort, packageDims string
	switch pkg {
	case "Radial, Can":
		if pitch == "" {
			return "", "", fmt.Errorf("unknown lead pitch for part %s", c.Get("DPN1"))
		}
		packageShort = "Radial"
		packageDims = fmt.Sprintf("D%s_H%s_P%s", diameter, height, pitch)
	case "Radial, Can - SMD":
		packageShort = "Radial_SMD"
		packageDims = fmt.Sprintf("D%s_H%s", diameter, height)
	default:
		return "", "", fmt.Errorf("unknown capacitor package %q", pkg)
	}

	pol := ""
	if polarization == "Polarized" {
		pol = "P"
	}
	c.set("package", fmt.Sprintf("C%s_%s_%s", pol, packageShort, packageDims))
	return packageShort, packageDims, nil
}

// capacitorMetadata fills in the IPN, description, and keywords.
func capacitorMetadata(c *Component, polarization, packageShort, packageDims string) {
	prefix := "C"
	if polarization == "Polarized" {
		prefix = "CP"
	}
	c.SetIPN(strings.Join([]string{
		prefix, c.Get("capacitance"), packageShort,
		c.Get("tolerance"), c.Get("voltage"), stripSpaces(c.Get("dielectric")),
	}, "_"))

	dielectric := c.Get("dielectric")
	// lowercase "Polarized Electrolytic" and friends, but not codes like X7R
	if strings.Contains(dielectric, "olarized") {
		dielectric = strings.ToLower(dielectric)
	}
	description := fmt.Sprintf("%s ±%s, %s, %s capacitor, %s",
		c.Get("capacitance"), c.Get("tolerance"), c.Get("voltage"),
		dielectric, strings.ToLower(packageShort))
	if packageDims != "" {
		r := strings.NewReplacer("D", "diameter ", "H", "height ", "P", "pitch ", "_", " ")
		description += ", " + r.Replace(packageDims)
	}
	c.set("description", description)

	c.set("keywords", fmt.Sprintf("c cap capacitor %s %s",
		strings.ToLower(polarization), c.Get("capacitance")))
}
