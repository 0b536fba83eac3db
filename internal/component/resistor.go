package component

import (
	"fmt"
	"strings"

	"partdb/internal/digikey"
)

// Resistor covers chip resistors and zero-ohm jumpers.
var Resistor = register(&Type{
	Table:        "resistor",
	FriendlyName: "Resistor",
	IPNPrefixes:  []string{"R"},
	ExtraColumns: []string{"resistance", "tolerance", "power", "composition"},
	FootprintMap: map[string]string{
		"0201": "Resistor_SMD:R_0201_0603Metric",
		"0402": "Resistor_SMD:R_0402_1005Metric",
		"0603": "Resistor_SMD:R_0603_1608Metric",
		"0805": "Resistor_SMD:R_0805_2012Metric",
		"1206": "Resistor_SMD:R_1206_3216Metric",
		"1210": "Resistor_SMD:R_1210_3225Metric",
	},
	matchDigikey: func(p *digikey.Product) bool {
		return p.Category() == "Resistors"
	},
})

func init() { Resistor.fromDigikey = resistorFromDigikey }

func resistorFromDigikey(p *digikey.Product, ask Prompter) (*Component, error) {
	c := newComponent(Resistor)
	commonData(c, p)

	for _, param := range p.Parameters {
		switch param.Parameter {
		case "Resistance":
			c.set("resistance", processResistance(param.Value))
		case "Tolerance":
			c.set("tolerance", processTolerance(param.Value))
		case "Power (Watts)":
			c.set("power", processPower(param.Value))
		case "Composition":
			c.set("composition", param.Value)
		case "Supplier Device Package":
			c.set("package", param.Value)
		}
	}

	c.set("value", "${Resistance}")
	c.set("description", resistorDescription(c))
	c.set("keywords", resistorKeywords(c))
	c.SetIPN(resistorIPN(c))
	c.set("kicad_symbol", "Device:R")
	determineFootprint(c, c.Get("package"), ask)

	return c, nil
}

// resistorDescription builds a human-readable summary, e.g.
// "100Ω ±1%, 0.1W resistor, 0603, thin film".
func resistorDescription(c *Component) string {
	composition := strings.ToLower(c.Get("composition"))
	if c.Get("resistance") == "0" {
		return fmt.Sprintf("0Ω jumper, %s, %s", c.Get("package"), composition)
	}
	return fmt.Sprintf("%sΩ ±%s, %s resistor, %s, %s",
		c.Get("resistance"), c.Get("tolerance"), c.Get("power"),
		c.Get("package"), composition)
}

func resistorKeywords(c *Component) string {
	if c.Get("resistance") == "0" {
		return "jumper"
	}
	return "r res resistor " + c.Get("resistance")
}

// resistorIPN builds the descriptive part number, e.g.
// R_100_0603_1%_0.1W_ThinFilm, or R_0_Jumper_0603_ThickFilm for zero-ohm
// jumpers.
func resistorIPN(c *Component) string {
	composition := stripSpaces(c.Get("composition"))
	if c.Get("resistance") == "0" {
		return strings.Join([]string{"R", "0", "Jumper", c.Get("package"), composition}, "_")
	}
	return strings.Join([]string{
		"R", c.Get("resistance"), c.Get("package"),
		c.Get("tolerance"), c.Get("power"), composition,
	}, "_")
}
