package feed

import "context"

// Outcome tags the result of an optimistic mutation.
type Outcome int

const (
	// Pending is the zero value: applied locally, remote confirmation not
	// yet resolved.
	Pending Outcome = iota
	Confirmed
	RolledBack
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Confirmed:
		return "confirmed"
	case RolledBack:
		return "rolled-back"
	default:
		return "unknown"
	}
}

// Mutation is the apply-locally, confirm-remotely, revert-on-failure shape
// used for engagement actions. Apply and Revert run synchronously and must
// be cheap; Confirm is the network call and runs between them without any
// lock held by this helper.
type Mutation struct {
	Apply   func()
	Confirm func(ctx context.Context) error
	Revert  func()
}

// Run applies the mutation, then confirms it. On confirmation failure the
// local state is reverted and RolledBack is returned; there is no retry.
func (m Mutation) Run(ctx context.Context) Outcome {
	if m.Apply != nil {
		m.Apply()
	}
	if m.Confirm != nil {
		if err := m.Confirm(ctx); err != nil {
			if m.Revert != nil {
				m.Revert()
			}
			return RolledBack
		}
	}
	return Confirmed
}
