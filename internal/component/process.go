package component

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The process* helpers normalize raw distributor parameter strings into the
// short canonical forms stored in the database and embedded in IPNs.

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	numberRe     = regexp.MustCompile(`\d+\.?\d*`)
	resistanceRe = regexp.MustCompile(`\d+\.?\d*\s*[kKmMG]?`)
	smdPackageRe = regexp.MustCompile(`^\d\d\d\d`)
	mmDimRe      = regexp.MustCompile(`(\d+\.?\d*)\s*mm`)
)

// processValueWithUnit removes spaces from a string, e.g. between a value
// and its unit.
func processValueWithUnit(value string) string {
	return whitespaceRe.ReplaceAllString(value, "")
}

// processTolerance returns a tolerance string such as 5% or 1.0%, or "-"
// when the parameter carries no number (e.g. jumpers).
func processTolerance(param string) string {
	if m := numberRe.FindString(param); m != "" {
		return m + "%"
	}
	return "-"
}

// shortManufacturerNames maps verbose distributor manufacturer names to the
// short forms used in descriptions and IPNs.
var shortManufacturerNames = map[string]string{
	"Amphenol ICC (FCI)": "Amphenol",
}

// processManufacturer returns the short form of a manufacturer name when
// one is known, or the name unchanged.
func processManufacturer(mfg string) string {
	if short, ok := shortManufacturerNames[mfg]; ok {
		return short
	}
	return mfg
}

// processSMDPackage extracts a leading chip-package size code, e.g. "0805"
// from "0805 (2012 Metric)". Strings without one are returned unchanged.
func processSMDPackage(param string) string {
	if m := smdPackageRe.FindString(param); m != "" {
		return m
	}
	return param
}

// processResistance returns a resistance string such as 10 or 1.0K: the
// leading number plus an optional SI prefix, with lowercase k upcased and
// whitespace removed.
func processResistance(param string) string {
	r := resistanceRe.FindString(param)
	r = strings.ReplaceAll(r, "k", "K")
	return whitespaceRe.ReplaceAllString(r, "")
}

// processPower returns a power string such as 5W or 0.125W, or "-" when the
// parameter carries no number.
func processPower(param string) string {
	if m := numberRe.FindString(param); m != "" {
		return m + "W"
	}
	return "-"
}

// processComposition returns a composition string with spaces removed,
// e.g. ThinFilm.
func processComposition(param string) string {
	return strings.ReplaceAll(param, " ", "")
}

// capacitanceRe accepts both the unicode mu and micro signs.
var capacitanceRe = regexp.MustCompile(`(\d+\.?\d*)\s*([fpPnNuUμµmM]?)`)

var capacitancePrefixes = []string{"f", "p", "n", "μ", "m"}

// processCapacitance returns a capacitance string with the mantissa
// normalized to [1, 1000), e.g. 10nF or 1.5μF.
func processCapacitance(param string) string {
	m := capacitanceRe.FindStringSubmatch(param)
	if m == nil {
		return param
	}
	value, _ := strconv.ParseFloat(m[1], 64)
	prefix := m[2]
	switch prefix {
	case "u", "U", "µ":
		prefix = "μ"
	case "P":
		prefix = "p"
	case "N":
		prefix = "n"
	case "M":
		prefix = "m"
	}

	n := 0
	for i, p := range capacitancePrefixes {
		if p == prefix {
			n = i
			break
		}
	}
	for value < 1 && n > 0 {
		value *= 1000
		n--
	}
	for value >= 1000 && n < len(capacitancePrefixes)-1 {
		value /= 1000
		n++
	}
	return trimFloat(value) + capacitancePrefixes[n] + "F"
}

// processVoltage returns a voltage rating string such as 50V.
func processVoltage(param string) string {
	return numberRe.FindString(param) + "V"
}

// processPolarization maps the distributor polarization parameter onto
// "Polarized" or "Unpolarized".
func processPolarization(param string) (string, error) {
	switch param {
	case "Bi-Polar":
		return "Unpolarized", nil
	case "Polar":
		return "Polarized", nil
	default:
		return "", fmt.Errorf("unknown capacitor polarization %q", param)
	}
}

// processDimension returns a millimeter dimension padded to four
// characters, e.g. 5.00mm or 12.7mm, or "-" when no millimeter value is
// present.
func processDimension(param string) string {
	m := mmDimRe.FindStringSubmatch(param)
	if m == nil {
		return "-"
	}
	dim, _ := strconv.ParseFloat(m[1], 64)
	s := trimFloat(dim)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	for len(s) < 4 {
		s += "0"
	}
	return s + "mm"
}

// trimFloat formats a float with no exponent and no trailing zeros.
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// stripSpaces removes all whitespace from a string.
func stripSpaces(s string) string {
	return whitespaceRe.ReplaceAllString(s, "")
}

// ipnFromMfgMPN builds the generic descriptive IPN used by part types
// without a dedicated scheme: prefix, manufacturer, and MPN joined by
// underscores, with internal spaces removed.
func ipnFromMfgMPN(prefix, mfg, mpn string) string {
	return prefix + "_" + stripSpaces(mfg) + "_" + stripSpaces(mpn)
}
