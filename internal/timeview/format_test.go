package timeview

import "testing"

func TestFormatBusValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"10110", "0x16"},
		{"101", "101"},
		{"xx", "XX"},
		{"zzzz", "ZZZZ"},
		{"ZzZ", "ZZZ"},
		{"xxxxxxxx", "X"},
		{"zzzzzz", "Z"},
		{"1010", "1010"},
		{"11111111", "0xFF"},
		{"00000", "0x0"},
		{"x1x0z1", "x1x0z1"},
		{"", ""},
		{"1111000011110000111100001111000011110000111100001111000011110000111100001", "0x1E1E1E1E1E1E1E1E1E1"},
	}
	for _, tt := range tests {
		if got := FormatBusValue(tt.in); got != tt.want {
			t.Errorf("FormatBusValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatGridLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		timescale string
		base      string
		scale     float64
		t         float64
		want      string
	}{
		{"zero uses timescale unit", "1ns", "auto", 1, 0, "0ns"},
		{"small value", "1ns", "auto", 1, 5, "5ns"},
		{"promotes to us", "1ns", "auto", 1, 2500, "2.5us"},
		{"exact unit boundary", "1ns", "auto", 1, 1000, "1us"},
		{"multiplier applied", "10ps", "auto", 1, 3, "30ps"},
		{"explicit base", "1ns", "ps", 1, 5, "5000ps"},
		{"explicit larger base", "1ns", "us", 100, 1250, "1.25us"},
		{"zero uses explicit base", "1ns", "us", 1, 0, "0us"},
		{"coarse zoom drops decimals", "1ns", "auto", 0.05, 2000, "2us"},
		{"coarse zoom rounds", "1ns", "auto", 0.05, 1700, "2us"},
		{"fine zoom keeps decimals", "1ns", "auto", 150, 1234.5, "1.2345us"},
		{"below a femtosecond", "1fs", "auto", 1000, 0.5, "0.5fs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := New(0, 0)
			if err := v.SetTimescale(tt.timescale); err != nil {
				t.Fatal(err)
			}
			if err := v.SetTimeBase(tt.base); err != nil {
				t.Fatal(err)
			}
			v.SetScale(tt.scale)
			if got := v.FormatGridLabel(tt.t); got != tt.want {
				t.Errorf("FormatGridLabel(%v) = %q, want %q", tt.t, got, tt.want)
			}
		})
	}
}

func TestFormatPreciseLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		timescale string
		t         float64
		want      string
	}{
		{"1ns", 0, "0ns"},
		{"1ns", 2500, "2500ns"},
		{"1ns", 12345, "12.345us"},
		{"1ns", 0.5, "500ps"},
		{"1ns", 7, "7000ps"},
		{"1s", 3, "3000ms"},
		{"1s", 20000, "20000s"},
		{"1ps", 1, "1000fs"},
	}
	for _, tt := range tests {
		v := New(0, 0)
		if err := v.SetTimescale(tt.timescale); err != nil {
			t.Fatal(err)
		}
		// Zoom and time-base have no effect.
		v.SetScale(0.01)
		if err := v.SetTimeBase("s"); err != nil {
			t.Fatal(err)
		}
		if got := v.FormatPreciseLabel(tt.t); got != tt.want {
			t.Errorf("%s: FormatPreciseLabel(%v) = %q, want %q", tt.timescale, tt.t, got, tt.want)
		}
	}
}

func TestFormatNumberStripsZeros(t *testing.T) {
	t.Parallel()

	tests := []struct {
		val  float64
		prec int
		want string
	}{
		{2.5, 4, "2.5"},
		{3, 2, "3"},
		{100, 0, "100"},
		{-0.00001, 2, "0"},
		{1.23456, 3, "1.235"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.val, tt.prec); got != tt.want {
			t.Errorf("formatNumber(%v, %d) = %q, want %q", tt.val, tt.prec, got, tt.want)
		}
	}
}

func TestParseTime(t *testing.T) {
	t.Parallel()
	v := New(0, 0)
	if err := v.SetTimescale("10ps"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"100", 100, false},
		{" 42 ", 42, false},
		{"50ns", 5000, false},
		{"1.5 ns", 150, false},
		{"25ps", 3, false}, // 2.5 ticks rounds away from zero
		{"1us", 100000, false},
		{"abc", 0, true},
		{"5 parsecs", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := v.ParseTime(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTime(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTime(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
