package scoring

import (
	"testing"

	"bridgelens/domain/bridge"
)

func mustContract(t *testing.T, raw string) bridge.Contract {
	t.Helper()
	c, ok := bridge.ParseContract(raw)
	if !ok {
		t.Fatalf("bad contract %q", raw)
	}
	return c
}

func TestScore(t *testing.T) {
	tests := []struct {
		contract   string
		tricks     int
		vulnerable bool
		year       int
		want       int
	}{
		// Made contracts.
		{"4HR", 10, true, 0, 1080},
		{"7H", 13, false, 0, 1510},
		{"3N", 9, false, 0, 400},
		{"3N", 10, false, 0, 430},
		{"2C", 8, false, 0, 90},
		{"2C", 9, true, 0, 110},
		{"6S", 12, true, 0, 1430},
		{"6S", 12, false, 0, 980},
		{"7NR", 13, true, 0, 2980},
		{"1NX", 8, false, 0, 280},
		{"2SX", 8, true, 0, 670},

		// Defeated contracts, modern undertrick rules.
		{"4SX", 8, true, 0, -500},
		{"4S", 8, false, 0, -100},
		{"4S", 8, true, 0, -200},
		{"4SX", 8, false, 0, -300},
		{"4SX", 6, false, 0, -800},
		{"5DX", 6, false, 0, -1100},
		{"5DR", 6, false, 0, -2200},
		{"3NX", 5, true, 0, -1100},

		// Pre-1988 doubled undertricks were a flat ladder.
		{"4SX", 6, false, 1987, -700},
		{"4SX", 6, false, 1988, -800},
		{"5DX", 6, false, 1980, -900},
		{"5DR", 6, false, 1980, -1800},
		// Vulnerable doubled undertricks did not change.
		{"4SX", 6, true, 1987, -1100},
		{"4SX", 6, true, 0, -1100},
	}
	for _, tt := range tests {
		got := Score(mustContract(t, tt.contract), tt.tricks, tt.vulnerable, tt.year)
		if got != tt.want {
			t.Errorf("Score(%s, %d tricks, vul=%v, year=%d) = %d, want %d",
				tt.contract, tt.tricks, tt.vulnerable, tt.year, got, tt.want)
		}
	}
}

func TestScoreVulnerabilityMonotonic(t *testing.T) {
	// Vulnerability never decreases a made contract's score and strictly
	// decreases a defeated contract's score.
	for _, raw := range []string{"1C", "3N", "4HX", "6SR", "7N"} {
		contract := mustContract(t, raw)
		for tricks := 0; tricks <= 13; tricks++ {
			nv := Score(contract, tricks, false, 0)
			v := Score(contract, tricks, true, 0)
			if tricks < contract.Bid.Level+6 {
				if v >= nv {
					t.Errorf("%s with %d tricks: vulnerable score %d not below %d", raw, tricks, v, nv)
				}
			} else if v < nv {
				t.Errorf("%s with %d tricks: vulnerable score %d below %d", raw, tricks, v, nv)
			}
		}
	}
}
