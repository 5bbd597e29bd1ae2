package growth

import (
	"testing"
	"time"
)

func TestTableIsMonotonic(t *testing.T) {
	for i := 1; i <= MaxLevel; i++ {
		if table[i] <= table[i-1] {
			t.Fatalf("table[%d]=%v not above table[%d]=%v", i, table[i], i-1, table[i-1])
		}
	}
	if Threshold(10) != 5500 {
		t.Errorf("Expected level 10 threshold 5500, got %v", Threshold(10))
	}
	if Threshold(11) != 5500+1100 {
		t.Errorf("Expected level 11 threshold %v, got %v", 5500+1100, Threshold(11))
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name      string
		level     int
		exp       float64
		amount    float64
		wantLevel int
		wantUp    bool
	}{
		{"below first threshold", 0, 0, 99, 0, false},
		{"exactly first threshold", 0, 0, 100, 1, true},
		{"skips several levels", 0, 0, 1000, 4, true},
		{"at cap keeps exp", MaxLevel, Threshold(MaxLevel), 10000, MaxLevel, false},
		{"zero amount", 3, 600, 0, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, exp, up := Advance(tt.level, tt.exp, tt.amount)
			if level != tt.wantLevel {
				t.Errorf("Expected level %d, got %d", tt.wantLevel, level)
			}
			if up != tt.wantUp {
				t.Errorf("Expected leveledUp %t, got %t", tt.wantUp, up)
			}
			if exp != tt.exp+tt.amount {
				t.Errorf("Expected exp %v, got %v", tt.exp+tt.amount, exp)
			}
		})
	}
}

func TestAdvanceMatchesLevelFor(t *testing.T) {
	level, exp := 0, 0.0
	amounts := []float64{3, 97, 250, 1, 0.5, 4000, 12345, 77, 999999}
	for _, a := range amounts {
		prev := level
		level, exp, _ = Advance(level, exp, a)
		if level < prev {
			t.Fatalf("level went down from %d to %d", prev, level)
		}
		if level != LevelFor(exp) {
			t.Fatalf("level %d does not match LevelFor(%v)=%d", level, exp, LevelFor(exp))
		}
	}
}

func TestProgress(t *testing.T) {
	if got := Progress(0, 50); got != 0.5 {
		t.Errorf("Expected 0.5, got %v", got)
	}
	if got := Progress(MaxLevel, 0); got != 1 {
		t.Errorf("Expected 1 at cap, got %v", got)
	}
	if got := Progress(2, 100); got != 0 {
		t.Errorf("Expected clamp to 0, got %v", got)
	}
	if got := Progress(1, 1e6); got != 1 {
		t.Errorf("Expected clamp to 1, got %v", got)
	}
}

func TestAgeInDays(t *testing.T) {
	born := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := AgeInDays(born, born.Add(47*time.Hour)); got != 1 {
		t.Errorf("Expected 1 day, got %d", got)
	}
	if got := AgeInDays(born, born.Add(-time.Hour)); got != 0 {
		t.Errorf("Expected 0 for clock skew, got %d", got)
	}
}
