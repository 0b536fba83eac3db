package component

import (
	"fmt"

	"partdb/internal/digikey"
)

// Type describes one component category: its database table, the IPN
// prefixes that identify it, its extra columns beyond the common set, and
// how to build a record from a Digikey part.
type Type struct {
	Table        string
	FriendlyName string
	IPNPrefixes  []string
	ExtraColumns []string

	// FootprintMap maps short package names to KiCad footprints. Packages
	// missing from the map fall back to prompting the user.
	FootprintMap map[string]string

	matchDigikey func(p *digikey.Product) bool
	fromDigikey  func(p *digikey.Product, ask Prompter) (*Component, error)

	columns []string
}

// Columns returns the ordered column names for the type's table: the common
// columns followed by the type's extra columns.
func (t *Type) Columns() []string { return t.columns }

var (
	registry       []*Type
	typeByTable    = make(map[string]*Type)
	typeByFriendly = make(map[string]*Type)
)

// register adds a type to the registry and the table/friendly-name lookup
// maps. Called from package-level var initializers only.
func register(t *Type) *Type {
	t.columns = append(append([]string{}, CommonColumns...), t.ExtraColumns...)
	registry = append(registry, t)
	typeByTable[t.Table] = t
	typeByFriendly[t.FriendlyName] = t
	return t
}

// Types returns all registered component types in registration order.
func Types() []*Type { return registry }

// TypeForTable returns the component type stored in the named table, or nil.
func TypeForTable(table string) *Type { return typeByTable[table] }

// TypeForFriendlyName returns the component type with the given display
// name, or nil.
func TypeForFriendlyName(name string) *Type { return typeByFriendly[name] }

// FromDigikey builds a component from a Digikey part, dispatching on the
// part's taxonomy to the matching component type.
func FromDigikey(p *digikey.Product, ask Prompter) (*Component, error) {
	for _, t := range registry {
		if t.matchDigikey != nil && t.matchDigikey(p) {
			return t.fromDigikey(p, ask)
		}
	}
	return nil, fmt.Errorf("no component type to handle part type %q for part %s",
		p.Category(), p.DigiKeyPartNumber)
}

// Prompter asks the user a question and returns their answer. It is used
// when a symbol or footprint cannot be derived from the part's parameters.
type Prompter func(prompt string) string

// NopPrompter never asks; it always returns "". Used in non-interactive
// contexts so that missing symbols and footprints stay blank.
func NopPrompter(string) string { return "" }

// askSymbol prompts for a library:symbol name for the given part number.
func askSymbol(ask Prompter, pn string) string {
	return ask(fmt.Sprintf("Enter symbol_library:symbol_name for component %s: ", pn))
}

// askFootprint prompts for a library:footprint name for the given part
// number.
func askFootprint(ask Prompter, pn string) string {
	return ask(fmt.Sprintf("Enter footprint_library:footprint_name for component %s: ", pn))
}

// commonData seeds a record with the fields every Digikey part carries.
func commonData(c *Component, p *digikey.Product) {
	c.set("datasheet", p.PrimaryDatasheet)
	c.set("manufacturer", processManufacturer(p.Manufacturer.Value))
	c.set("MPN", p.ManufacturerPartNumber)
	c.set("distributor1", "Digikey")
	c.set("DPN1", p.DigiKeyPartNumber)
}

// determineFootprint resolves the KiCad footprint for the given package via
// the type's footprint map, or asks the user when the package is unknown.
func determineFootprint(c *Component, pkg string, ask Prompter) {
	if fp, ok := c.typ.FootprintMap[pkg]; ok {
		c.set("kicad_footprint", fp)
		return
	}
	c.set("kicad_footprint", askFootprint(ask, c.Get("DPN1")))
}
