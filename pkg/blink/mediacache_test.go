package blink

import (
	"reflect"
	"testing"
)

func TestClipHistoryMotion(t *testing.T) {
	h := newClipHistory(5)

	// Seed a prior cycle holding c1 and c2.
	h.record("c1")
	h.record("c2")
	h.beginCycle()

	if h.record("c2") {
		t.Error("expected re-fetch of c2 to not count as motion")
	}

	h = newClipHistory(5)
	h.record("c1")
	h.record("c2")
	h.beginCycle()

	if !h.record("c3") {
		t.Error("expected fresh clip c3 to count as motion")
	}
	if got := h.entries(); !reflect.DeepEqual(got, []string{"c3"}) {
		t.Errorf("expected history [c3] after reset-repopulate, got %v", got)
	}
}

func TestClipHistoryEmptyNeverCached(t *testing.T) {
	h := newClipHistory(3)
	h.beginCycle()

	if h.record("") {
		t.Error("expected empty clip address to never count as motion")
	}
	if got := h.entries(); len(got) != 0 {
		t.Errorf("expected empty history, got %v", got)
	}
}

func TestClipHistoryEviction(t *testing.T) {
	h := newClipHistory(2)
	h.beginCycle()
	h.record("c1")
	h.record("c2")
	h.record("c3")

	if got := h.entries(); !reflect.DeepEqual(got, []string{"c2", "c3"}) {
		t.Errorf("expected oldest entry evicted, got %v", got)
	}
}

func TestClipHistorySameCycleRepeat(t *testing.T) {
	h := newClipHistory(5)
	h.beginCycle()

	if !h.record("c1") {
		t.Error("expected first sighting of c1 to count as motion")
	}
	// Repeat within one cycle still compares against the prior cycle.
	if !h.record("c1") {
		t.Error("expected repeat within the cycle to keep the motion verdict")
	}

	h.beginCycle()
	if h.record("c1") {
		t.Error("expected c1 to be stale in the next cycle")
	}
}
