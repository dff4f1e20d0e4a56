package vcd

import "strings"

// Change is a decoded value-change line. The set of implementations is
// closed: Scalar, Vector and Real.
type Change interface {
	// Ident returns the VCD identifier the change applies to.
	Ident() string

	sealed()
}

// Scalar is a 1-bit change such as "1!" or "x#".
type Scalar struct {
	ID  string
	Bit byte
}

// Vector is a bus change such as "b1010 !". Bits may contain x and z.
type Vector struct {
	ID   string
	Bits string
}

// Real is a real-valued change such as "r3.14 !", kept as literal text.
type Real struct {
	ID   string
	Text string
}

func (c Scalar) Ident() string { return c.ID }
func (Scalar) sealed()         {}

func (c Vector) Ident() string { return c.ID }
func (Vector) sealed()         {}

func (c Real) Ident() string { return c.ID }
func (Real) sealed()         {}

// decodeChange classifies a trimmed, non-empty body line by its leading
// character. It returns ErrMalformedDirective for a recognised prefix with
// missing fields and ErrUnrecognizedLine for anything else.
func decodeChange(line string) (Change, error) {
	switch line[0] {
	case '0', '1', 'x', 'X', 'z', 'Z':
		id := line[1:]
		if id == "" || strings.ContainsAny(id[:1], " \t") {
			return nil, ErrMalformedDirective
		}
		return Scalar{ID: id, Bit: line[0]}, nil

	case 'b', 'B', 'r', 'R':
		fields := strings.Fields(line)
		if len(fields) < 2 || len(fields[0]) < 2 {
			return nil, ErrMalformedDirective
		}
		val, id := fields[0][1:], fields[1]
		if line[0] == 'r' || line[0] == 'R' {
			return Real{ID: id, Text: val}, nil
		}
		return Vector{ID: id, Bits: val}, nil
	}
	return nil, ErrUnrecognizedLine
}
