package engine

import "testing"

func TestClockLatchesStop(t *testing.T) {
	c := NewClock(0, 3)
	if !c.Running() {
		t.Fatal("new clock should be running")
	}

	for i := 1; i <= 5; i++ {
		c.Advance()
		want := i < 3
		if c.Running() != want {
			t.Errorf("after %d advances Running() = %v, want %v", i, c.Running(), want)
		}
		if c.Ticks() != i {
			t.Errorf("Ticks() = %d, want %d", c.Ticks(), i)
		}
	}
}

func TestClockStartOffset(t *testing.T) {
	c := NewClock(7, 8)
	c.Advance()
	if c.Running() {
		t.Error("clock starting one below its limit should stop after one advance")
	}
	if c.Limit() != 8 {
		t.Errorf("Limit() = %d, want 8", c.Limit())
	}
}
