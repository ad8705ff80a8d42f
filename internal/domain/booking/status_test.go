package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phucdtWork/clinic-scheduler/internal/httperr"
)

func TestTransitionGuards(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusRejected, StatusCompleted, StatusCancelled}

	tests := []struct {
		name    string
		guard   func(Status) error
		allowed map[Status]bool
	}{
		{"confirm", CanConfirm, map[Status]bool{StatusPending: true}},
		{"reject", CanReject, map[Status]bool{StatusPending: true}},
		{"cancel", CanCancel, map[Status]bool{StatusPending: true, StatusConfirmed: true}},
		{"complete", CanComplete, map[Status]bool{StatusConfirmed: true}},
		{"reschedule", CanReschedule, map[Status]bool{StatusPending: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range all {
				err := tt.guard(s)
				if tt.allowed[s] {
					assert.NoError(t, err, "from %s", s)
				} else {
					assert.True(t, httperr.IsBusiness(err, "invalid_transition"), "from %s", s)
				}
			}
		})
	}
}

func TestTerminalStatesAdmitNoTransition(t *testing.T) {
	for _, s := range []Status{StatusRejected, StatusCompleted, StatusCancelled} {
		assert.True(t, IsTerminal(s))
		assert.False(t, IsLive(s))

		assert.Error(t, CanConfirm(s))
		assert.Error(t, CanReject(s))
		assert.Error(t, CanCancel(s))
		assert.Error(t, CanComplete(s))
		assert.Error(t, CanReschedule(s))
	}
}

func TestLiveStatuses(t *testing.T) {
	assert.True(t, IsLive(StatusPending))
	assert.True(t, IsLive(StatusConfirmed))
	assert.False(t, IsLive(StatusRejected))

	assert.Equal(t, StatusPending, InitialStatus())

	assert.True(t, IsKnown(StatusCancelled))
	assert.False(t, IsKnown(Status("archived")))
}
