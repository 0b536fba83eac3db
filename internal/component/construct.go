package component

import (
	"fmt"
	"strings"
)

// NewResistor builds a chip resistor from explicit parameters, without a
// distributor lookup. The package must be one of the known chip sizes.
func NewResistor(resistance, tolerance, power, composition, pkg string) (*Component, error) {
	fp, ok := Resistor.FootprintMap[pkg]
	if !ok {
		return nil, fmt.Errorf("unknown resistor package %q", pkg)
	}

	c := newComponent(Resistor)
	c.set("resistance", resistance)
	c.set("tolerance", tolerance)
	c.set("power", power)
	c.set("composition", composition)
	c.set("package", pkg)
	c.set("value", "${Resistance}")
	c.set("description", resistorDescription(c))
	c.set("keywords", resistorKeywords(c))
	c.SetIPN(resistorIPN(c))
	c.set("kicad_symbol", "Device:R")
	c.set("kicad_footprint", fp)
	return c, nil
}

// NewCapacitor builds an unpolarized ceramic chip capacitor from explicit
// parameters.
func NewCapacitor(capacitance, dielectric, tolerance, voltage, pkg string) (*Component, error) {
	fp, ok := Capacitor.FootprintMap[pkg]
	if !ok {
		return nil, fmt.Errorf("unknown capacitor package %q", pkg)
	}

	c := newComponent(Capacitor)
	c.set("capacitance", capacitance)
	c.set("dielectric", dielectric)
	c.set("tolerance", tolerance)
	c.set("voltage", voltage)
	c.set("package", pkg)
	c.set("value", "${Capacitance}")
	c.set("kicad_symbol", capacitorSymbol("Unpolarized"))
	c.set("kicad_footprint", fp)
	capacitorMetadata(c, "Unpolarized", pkg, "")
	return c, nil
}

// NewPinHeader builds an unshrouded vertical 2.54mm pin header.
func NewPinHeader(rows, cols int) *Component {
	c := newComponent(Connector)
	c.set("package", "Header")
	c.set("value", fmt.Sprintf("%dx%d Header", rows, cols))
	c.set("description", fmt.Sprintf("%dx%d unshrouded pinheader, vertical, 2.54mm", rows, cols))
	c.set("keywords", "")
	c.set("kicad_footprint", fmt.Sprintf(
		"Connector_PinHeader_2.54mm:PinHeader_%dx%02d_P2.54mm_Vertical", rows, cols))
	if rows == 1 {
		c.set("kicad_symbol", fmt.Sprintf("Connector:Conn_%02dx%02d_Pin", rows, cols))
	} else {
		c.set("kicad_symbol", fmt.Sprintf("Connector_Generic:Conn_%02dx%02d_Odd_Even", rows, cols))
	}
	c.SetIPN(strings.Join([]string{
		"CONN", "Header", fmt.Sprintf("%dx%02d", rows, cols),
	}, "_"))
	return c
}
