package overs

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		over int
		want Phase
	}{
		{1, Powerplay},
		{6, Powerplay},
		{7, Middle},
		{15, Middle},
		{16, Death},
		{20, Death},
	}
	for _, c := range cases {
		if got := Classify(c.over); got != c.want {
			t.Errorf("Classify(%d) = %v, want %v", c.over, got, c.want)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		balls int
		want  string
	}{
		{0, "0.0"},
		{6, "1.0"},
		{117, "19.3"},
		{120, "20.0"},
		{-3, "0.0"},
	}
	for _, c := range cases {
		if got := Format(c.balls); got != c.want {
			t.Errorf("Format(%d) = %q, want %q", c.balls, got, c.want)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if Powerplay.String() != "powerplay" || Middle.String() != "middle" || Death.String() != "death" {
		t.Error("phase names changed")
	}
}
