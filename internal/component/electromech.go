package component

import (
	"fmt"
	"strconv"
	"strings"

	"partdb/internal/digikey"
)

// Connector covers headers, sockets, audio jacks, and other interconnects.
// Connector parametric data is too varied for automatic symbol/footprint
// selection, so both are always prompted.
var Connector = register(&Type{
	Table:        "connector",
	FriendlyName: "Connector",
	IPNPrefixes:  []string{"CONN"},
	matchDigikey: func(p *digikey.Product) bool {
		return p.Category() == "Connectors, Interconnects"
	},
})

func init() { Connector.fromDigikey = connectorFromDigikey }

func connectorFromDigikey(p *digikey.Product, ask Prompter) (*Component, error) {
	c := newComponent(Connector)
	commonData(c, p)

	var (
		positions, rows, mountingType, orientation string
		connectorType, contactType, pitch          string
		shrouded, latch, polarization, diameter    string
		signalLines, internalSwitch                string
	)
	for _, param := range p.Parameters {
		switch param.Parameter {
		case "Number of Positions":
			positions = param.Value
		case "Number of Rows":
			rows = param.Value
		case "Mounting Type":
			switch {
			case strings.Contains(param.Value, "Through Hole"):
				mountingType = "Through Hole"
			case strings.Contains(param.Value, "Surface Mount"):
				mountingType = "Surface Mount"
			default:
				mountingType = "unknown mounting type"
			}
			if strings.Contains(param.Value, "Right Angle") {
				orientation = "Horizontal"
			} else {
				orientation = "Vertical"
			}
		case "Pitch - Mating":
			if strings.Contains(param.Value, `0.100"`) {
				pitch = "2.54mm"
			} else {
				pitch = param.Value
			}
		case "Shrouding":
			lc := strings.ToLower(param.Value)
			switch {
			case strings.Contains(lc, "unshrouded"):
				shrouded = "Unshrouded"
			case strings.Contains(lc, "shrouded"):
				shrouded = "Shrouded"
			}
		case "Industry Recognized Mating Diameter":
			switch {
			case strings.Contains(param.Value, "3.50mm"):
				diameter = "3.5mm"
			case strings.Contains(param.Value, "6.35mm"):
				diameter = "6.35mm"
			case strings.Contains(param.Value, "2.50mm"):
				diameter = "2.5mm"
			default:
				diameter = param.Value
			}
		case "Connector Type":
			if strings.Contains(strings.ToLower(param.Value), "header") {
				connectorType = "Header"
			} else {
				connectorType = param.Value
			}
		case "Contact Type":
			lc := strings.ToLower(param.Value)
			switch {
			case strings.Contains(lc, "female"):
				contactType = "Sockets"
			case strings.Contains(lc, "male"):
				contactType = "Pins"
			}
		case "Fastening Type":
			if strings.Contains(param.Value, "Latch") {
				latch = "Latch"
			}
		case "Features":
			if strings.Contains(param.Value, "Polarizing Key") {
				polarization = "Polarizing Key"
			}
		case "Signal Lines":
			signalLines = param.Value
		case "Internal Switch":
			internalSwitch = param.Value
		}
	}

	c.set("package", connectorType)

	var sb strings.Builder
	if mfg := c.Get("manufacturer"); mfg != "" {
		sb.WriteString(mfg + " ")
	}
	if series := p.Series.Value; series != "" && series != "-" {
		sb.WriteString(series + " ")
	}
	if positions != "" && rows != "" {
		npos, err1 := strconv.Atoi(positions)
		nrows, err2 := strconv.Atoi(rows)
		if err1 == nil && err2 == nil && nrows > 0 {
			sb.WriteString(fmt.Sprintf("%dx%02d ", nrows, npos/nrows))
		}
	}
	if shrouded != "" {
		sb.WriteString(shrouded + " ")
	}
	if diameter != "" {
		sb.WriteString(diameter + " ")
	}
	sb.WriteString(connectorType + ", ")
	if contactType != "" {
		sb.WriteString(contactType + ", ")
	}
	if pitch != "" {
		sb.WriteString(pitch + ", ")
	}
	sb.WriteString(mountingType + ", " + orientation)
	for _, extra := range []string{latch, polarization, signalLines, internalSwitch} {
		if extra != "" {
			sb.WriteString(", " + extra)
		}
	}
	c.set("description", sb.String())
	c.set("value", "${MPN}")
	c.SetIPN(ipnFromMfgMPN("CONN", c.Get("manufacturer"), c.Get("MPN")))

	c.set("kicad_symbol", askSymbol(ask, c.Get("DPN1")))
	c.set("kicad_footprint", askFootprint(ask, c.Get("DPN1")))

	return c, nil
}

// Switch covers tactile switches (BUT prefix) and everything else under the
// distributor's Switches category (SW prefix).
var Switch = register(&Type{
	Table:        "switch",
	FriendlyName: "Switch",
	IPNPrefixes:  []string{"SW", "BUT"},
	matchDigikey: func(p *digikey.Product) bool {
		return p.Category() == "Switches"
	},
})

func init() { Switch.fromDigikey = switchFromDigikey }

func switchFromDigikey(p *digikey.Product, ask Prompter) (*Component, error) {
	c := newComponent(Switch)
	commonData(c, p)

	var circuit string
	for _, param := range p.Parameters {
		if param.Parameter == "Circuit" {
			circuit = param.Value
		}
	}

	series := p.Series.Value
	tactile := p.Subcategory() == "Tactile Switches"

	prefix := "SW"
	kind := " switch, "
	keywords := ""
	if tactile {
		prefix = "BUT"
		kind = " tactile switch, "
		keywords = "button push"
	}

	c.set("package", series)
	c.set("description", c.Get("manufacturer")+" "+series+kind+circuit)
	c.set("keywords", keywords)
	c.set("value", "${MPN}")
	c.SetIPN(ipnFromMfgMPN(prefix, c.Get("manufacturer"), c.Get("MPN")))

	c.set("kicad_symbol", askSymbol(ask, c.Get("DPN1")))
	c.set("kicad_footprint", askFootprint(ask, c.Get("DPN1")))

	return c, nil
}

// Graphic is for schematic/board graphics (logos, fiducial art). Graphics
// never correspond to distributor parts; they are only ever loaded from CSV.
var Graphic = register(&Type{
	Table:        "graphic",
	FriendlyName: "Graphic",
	IPNPrefixes:  []string{"GRAPHIC"},
})
