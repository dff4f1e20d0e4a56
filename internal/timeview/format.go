package timeview

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// FormatGridLabel renders a grid time. The unit is the selected time-base,
// or with "auto" the largest unit in which the value is at least 1. The
// number of decimals grows with the zoom level.
func (v *View) FormatGridLabel(t float64) string {
	if t == 0 {
		if !v.baseAuto {
			return "0" + v.baseUnit.String()
		}
		return "0" + v.tsUnit.String()
	}
	raw := t * v.tsMult
	unit := v.baseUnit
	if v.baseAuto {
		unit = Femtosecond
		for u := Second; u > Femtosecond; u-- {
			if math.Abs(convert(raw, v.tsUnit, u)) >= 1-1e-9 {
				unit = u
				break
			}
		}
	}
	return formatNumber(convert(raw, v.tsUnit, unit), gridPrecision(v.scale)) + unit.String()
}

func gridPrecision(scale float64) int {
	switch {
	case scale >= 100:
		return 4
	case scale >= 10:
		return 3
	case scale >= 1:
		return 2
	case scale >= 0.1:
		return 1
	}
	return 0
}

// FormatPreciseLabel renders a cursor or marker time in the smallest unit
// that keeps the magnitude under 10000, ignoring zoom and time-base.
func (v *View) FormatPreciseLabel(t float64) string {
	if t == 0 {
		return "0" + v.tsUnit.String()
	}
	raw := t * v.tsMult
	unit := Second
	for u := Femtosecond; u < Second; u++ {
		if math.Abs(convert(raw, v.tsUnit, u)) < 10000 {
			unit = u
			break
		}
	}
	val := convert(raw, v.tsUnit, unit)
	return formatNumber(val, precisePrecision(math.Abs(val))) + unit.String()
}

func precisePrecision(mag float64) int {
	switch {
	case mag >= 1000:
		return 1
	case mag >= 100:
		return 2
	case mag >= 10:
		return 3
	case mag >= 1:
		return 4
	}
	return 5
}

// formatNumber prints val with prec decimals and strips trailing zeros and
// a bare trailing point.
func formatNumber(val float64, prec int) string {
	s := strconv.FormatFloat(val, 'f', prec, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// FormatBusValue renders a bus bit string: short values verbatim, longer
// binary values as 0x-prefixed uppercase hex, all-x or all-z values in
// uppercase. Anything else is returned unchanged.
func FormatBusValue(bits string) string {
	if bits == "" {
		return bits
	}
	if allOf(bits, "xX") || allOf(bits, "zZ") {
		if len(bits) <= 4 {
			return strings.ToUpper(bits)
		}
		return strings.ToUpper(bits[:1])
	}
	if len(bits) <= 4 || !allOf(bits, "01") {
		return bits
	}
	n, ok := new(big.Int).SetString(bits, 2)
	if !ok {
		return bits
	}
	return "0x" + strings.ToUpper(n.Text(16))
}

func allOf(s, set string) bool {
	return strings.Trim(s, set) == ""
}

// ParseTime reads a time typed by the user. A bare integer is a tick count
// in the trace timescale; a number with a unit suffix such as "2.5us" is
// converted to the nearest tick.
func (v *View) ParseTime(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	val, unit, err := ParseTimescale(s)
	if err != nil {
		return 0, fmt.Errorf("time %q: want ticks or a number with a unit", s)
	}
	return int64(math.Round(convert(val, unit, v.tsUnit) / v.tsMult)), nil
}
