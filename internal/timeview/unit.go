package timeview

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is an SI time unit from femtoseconds to seconds.
type Unit int

// Supported units, in increasing size. Each is 1000 times the previous one.
const (
	Femtosecond Unit = iota
	Picosecond
	Nanosecond
	Microsecond
	Millisecond
	Second
)

var unitNames = [...]string{"fs", "ps", "ns", "us", "ms", "s"}

// Sentinel errors for timescale and time-base parsing.
var (
	ErrBadTimescale = errors.New("invalid timescale")
	ErrBadTimeBase  = errors.New("invalid time base")
)

// TimeBaseAuto lets each label pick its own unit.
const TimeBaseAuto = "auto"

func (u Unit) String() string {
	if u < Femtosecond || u > Second {
		return "Unit(" + strconv.Itoa(int(u)) + ")"
	}
	return unitNames[u]
}

// Next returns the next larger unit, wrapping from seconds to femtoseconds.
func (u Unit) Next() Unit {
	if u >= Second {
		return Femtosecond
	}
	return u + 1
}

// convert rescales v expressed in from into to.
func convert(v float64, from, to Unit) float64 {
	return v * math.Pow10(3*int(from-to))
}

func parseUnit(s string) (Unit, bool) {
	for i, name := range unitNames {
		if s == name {
			return Unit(i), true
		}
	}
	return 0, false
}

// ParseTimescale splits a timescale such as "1ns", "10 ps" or "100us" into
// its multiplier and unit.
func ParseTimescale(s string) (float64, Unit, error) {
	compact := strings.Join(strings.Fields(s), "")
	i := strings.IndexFunc(compact, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if i <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadTimescale, s)
	}
	mult, err := strconv.ParseFloat(compact[:i], 64)
	if err != nil || mult <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadTimescale, s)
	}
	unit, ok := parseUnit(strings.ToLower(compact[i:]))
	if !ok {
		return 0, 0, fmt.Errorf("%w: unknown unit in %q", ErrBadTimescale, s)
	}
	return mult, unit, nil
}

// ParseTimeBase parses a display time-base: "auto" or a unit name. auto
// reports whether the time-base is automatic.
func ParseTimeBase(s string) (unit Unit, auto bool, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == TimeBaseAuto {
		return 0, true, nil
	}
	u, ok := parseUnit(s)
	if !ok {
		return 0, false, fmt.Errorf("%w: %q", ErrBadTimeBase, s)
	}
	return u, false, nil
}

// NextTimeBase cycles auto, fs, ps, ns, us, ms, s and back to auto.
// Unrecognised input restarts the cycle at auto.
func NextTimeBase(base string) string {
	u, auto, err := ParseTimeBase(base)
	switch {
	case err != nil:
		return TimeBaseAuto
	case auto:
		return Femtosecond.String()
	case u == Second:
		return TimeBaseAuto
	}
	return u.Next().String()
}
