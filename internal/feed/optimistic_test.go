package feed

import (
	"context"
	"errors"
	"testing"
)

func TestMutationConfirmed(t *testing.T) {
	var applied, reverted bool
	m := Mutation{
		Apply:   func() { applied = true },
		Confirm: func(ctx context.Context) error { return nil },
		Revert:  func() { reverted = true },
	}

	if got := m.Run(context.Background()); got != Confirmed {
		t.Errorf("Run = %v, want Confirmed", got)
	}
	if !applied {
		t.Error("Apply was not called")
	}
	if reverted {
		t.Error("Revert must not run on success")
	}
}

func TestMutationRolledBack(t *testing.T) {
	var order []string
	m := Mutation{
		Apply:   func() { order = append(order, "apply") },
		Confirm: func(ctx context.Context) error { return errors.New("backend down") },
		Revert:  func() { order = append(order, "revert") },
	}

	if got := m.Run(context.Background()); got != RolledBack {
		t.Errorf("Run = %v, want RolledBack", got)
	}
	if len(order) != 2 || order[0] != "apply" || order[1] != "revert" {
		t.Errorf("call order = %v, want [apply revert]", order)
	}
}

func TestMutationToleratesNilFuncs(t *testing.T) {
	if got := (Mutation{}).Run(context.Background()); got != Confirmed {
		t.Errorf("empty mutation Run = %v, want Confirmed", got)
	}
	m := Mutation{Confirm: func(ctx context.Context) error { return errors.New("boom") }}
	if got := m.Run(context.Background()); got != RolledBack {
		t.Errorf("Run = %v, want RolledBack", got)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{Pending, "pending"},
		{Confirmed, "confirmed"},
		{RolledBack, "rolled-back"},
		{Outcome(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(tt.outcome), got, tt.want)
		}
	}
}
