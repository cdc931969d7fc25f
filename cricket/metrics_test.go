package cricket

import "testing"

func TestStrikeRate(t *testing.T) {
	cases := []struct {
		name  string
		runs  int
		balls int
		want  float64
	}{
		{"even hundred", 50, 50, 100},
		{"run a ball fifty", 75, 50, 150},
		{"zero balls returns zero not NaN", 42, 0, 0},
		{"zero runs", 0, 12, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := StrikeRate(c.runs, c.balls); got != c.want {
				t.Errorf("StrikeRate(%d, %d) = %v, want %v", c.runs, c.balls, got, c.want)
			}
		})
	}
}

func TestEconomy(t *testing.T) {
	cases := []struct {
		name     string
		conceded int
		balls    int
		want     float64
	}{
		{"a run a ball is six an over", 24, 24, 6},
		{"maiden spell", 0, 12, 0},
		{"zero balls returns zero not error", 0, 0, 0},
		{"expensive over", 18, 6, 18},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Economy(c.conceded, c.balls); got != c.want {
				t.Errorf("Economy(%d, %d) = %v, want %v", c.conceded, c.balls, got, c.want)
			}
		})
	}
}

func TestNetRunRate(t *testing.T) {
	// The approximation divides the aggregate run difference by matches and
	// by a flat 20 overs; it is not the official overs-weighted formula.
	if got := NetRunRate(1700, 1600, 10); got != 0.5 {
		t.Errorf("NetRunRate(1700, 1600, 10) = %v, want 0.5", got)
	}
	if got := NetRunRate(1600, 1700, 10); got != -0.5 {
		t.Errorf("NetRunRate(1600, 1700, 10) = %v, want -0.5", got)
	}
	if got := NetRunRate(100, 50, 0); got != 0 {
		t.Errorf("NetRunRate with zero matches = %v, want 0", got)
	}
}

func TestWinPct(t *testing.T) {
	if got := WinPct(1, 2); got != 50 {
		t.Errorf("WinPct(1, 2) = %v, want 50", got)
	}
	if got := WinPct(0, 0); got != 0 {
		t.Errorf("WinPct(0, 0) = %v, want 0", got)
	}
}

func TestAveragesZeroGuards(t *testing.T) {
	if got := BattingAverage(120, 0); got != 0 {
		t.Errorf("BattingAverage never-dismissed = %v, want 0", got)
	}
	if got := BowlingAverage(80, 0); got != 0 {
		t.Errorf("BowlingAverage wicketless = %v, want 0", got)
	}
	if got := BowlingStrikeRate(60, 0); got != 0 {
		t.Errorf("BowlingStrikeRate wicketless = %v, want 0", got)
	}
	if got := BowlingAverage(80, 4); got != 20 {
		t.Errorf("BowlingAverage(80, 4) = %v, want 20", got)
	}
}

func TestRatesNonNegative(t *testing.T) {
	inputs := [][2]int{{0, 0}, {0, 10}, {10, 0}, {37, 21}}
	for _, in := range inputs {
		if sr := StrikeRate(in[0], in[1]); sr < 0 {
			t.Errorf("StrikeRate(%d, %d) = %v, negative", in[0], in[1], sr)
		}
		if ec := Economy(in[0], in[1]); ec < 0 {
			t.Errorf("Economy(%d, %d) = %v, negative", in[0], in[1], ec)
		}
	}
}
