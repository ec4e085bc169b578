package domain

import "testing"

func TestFlowStateValid(t *testing.T) {
	t.Parallel()

	for _, state := range []FlowState{FlowNone, FlowAwaitingName, FlowAwaitingGrams, FlowAwaitingFeeds} {
		if !state.Valid() {
			t.Errorf("state %q should be valid", state)
		}
	}

	if FlowState("awaiting_color").Valid() {
		t.Error("unrecognized token should not be valid")
	}
}

func TestFlowStateActive(t *testing.T) {
	t.Parallel()

	if FlowNone.Active() {
		t.Error("FlowNone should not be active")
	}
	if !FlowAwaitingGrams.Active() {
		t.Error("FlowAwaitingGrams should be active")
	}
}

func TestCatComplete(t *testing.T) {
	t.Parallel()

	cat := Cat{Name: "Mochi", GramsPerDay: 50, FeedsPerDay: 3}
	if !cat.Complete() {
		t.Error("cat with all fields set should be complete")
	}

	for _, incomplete := range []Cat{
		{},
		{Name: "Mochi"},
		{Name: "Mochi", GramsPerDay: 50},
		{GramsPerDay: 50, FeedsPerDay: 3},
	} {
		if incomplete.Complete() {
			t.Errorf("cat %+v should not be complete", incomplete)
		}
	}
}
