package clock

import (
	"testing"
	"time"
)

func TestFixedNeverMoves(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := Fixed(at)
	if !c.Now().Equal(at) || !c.Now().Equal(at) {
		t.Fatalf("Fixed clock moved: %v", c.Now())
	}
}

func TestManualAdvance(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m := NewManual(at)
	m.Advance(90 * time.Minute)
	want := at.Add(90 * time.Minute)
	if !m.Now().Equal(want) {
		t.Fatalf("Now() = %v, want %v", m.Now(), want)
	}
	m.Set(at)
	if !m.Now().Equal(at) {
		t.Fatalf("Set did not reset clock: %v", m.Now())
	}
}

func TestSystemUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", 3*60*60)
	if got := System(loc).Now().Location(); got != loc {
		t.Fatalf("location = %v, want %v", got, loc)
	}
	if got := System(nil).Now().Location(); got != time.Local {
		t.Fatalf("nil location = %v, want Local", got)
	}
}
