package vcd

import (
	"errors"
	"testing"
)

func TestDecodeChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line    string
		want    Change
		wantErr error
	}{
		{"0!", Scalar{ID: "!", Bit: '0'}, nil},
		{"1#%", Scalar{ID: "#%", Bit: '1'}, nil},
		{"Xab", Scalar{ID: "ab", Bit: 'X'}, nil},
		{"z\"", Scalar{ID: "\"", Bit: 'z'}, nil},
		{"b1010 !", Vector{ID: "!", Bits: "1010"}, nil},
		{"Bxz01   #", Vector{ID: "#", Bits: "xz01"}, nil},
		{"r1.5e-3 r", Real{ID: "r", Text: "1.5e-3"}, nil},
		{"R7 !", Real{ID: "!", Text: "7"}, nil},
		{"1", nil, ErrMalformedDirective},
		{"1 !", nil, ErrMalformedDirective},
		{"b1010", nil, ErrMalformedDirective},
		{"b !", nil, ErrMalformedDirective},
		{"r !", nil, ErrMalformedDirective},
		{"s hello !", nil, ErrUnrecognizedLine},
		{"?!", nil, ErrUnrecognizedLine},
	}
	for _, tt := range tests {
		got, err := decodeChange(tt.line)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("decodeChange(%q) error = %v, want %v", tt.line, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("decodeChange(%q) = %#v, want %#v", tt.line, got, tt.want)
		}
	}
}
