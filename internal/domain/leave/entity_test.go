package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus(t *testing.T) {
	cases := []struct {
		current Status
		action  Action
		want    Status
		wantErr bool
	}{
		{StatusPending, ActionConfirm, StatusApproved, false},
		{StatusPending, ActionReject, StatusCancelled, false},
		{StatusPending, ActionCancel, StatusCancelled, false},
		{StatusPending, ActionReverse, "", true},
		{StatusApproved, ActionReverse, StatusReverse, false},
		{StatusApproved, ActionCancel, StatusCancelled, false},
		{StatusApproved, ActionConfirm, "", true},
		{StatusReverse, ActionCancel, StatusCancelled, false},
		{StatusReverse, ActionConfirm, "", true},
		{StatusCancelled, ActionConfirm, "", true},
		{StatusCancelled, ActionCancel, "", true},
	}

	for _, c := range cases {
		got, err := NextStatus(c.current, c.action)
		if c.wantErr {
			assert.ErrorIs(t, err, ErrActionNotAvailable, "%s + %s", c.current, c.action)
			continue
		}
		require.NoError(t, err, "%s + %s", c.current, c.action)
		assert.Equal(t, c.want, got, "%s + %s", c.current, c.action)
	}
}

func TestManagerCan(t *testing.T) {
	assert.True(t, ManagerCan(StatusPending, ActionConfirm))
	assert.True(t, ManagerCan(StatusPending, ActionReject))
	assert.False(t, ManagerCan(StatusPending, ActionCancel))
	assert.False(t, ManagerCan(StatusPending, ActionReverse))

	assert.True(t, ManagerCan(StatusApproved, ActionReverse))
	assert.True(t, ManagerCan(StatusApproved, ActionCancel))
	assert.False(t, ManagerCan(StatusApproved, ActionConfirm))

	assert.True(t, ManagerCan(StatusReverse, ActionCancel))
	assert.False(t, ManagerCan(StatusReverse, ActionReverse))

	for _, a := range []Action{ActionConfirm, ActionReject, ActionCancel, ActionReverse} {
		assert.False(t, ManagerCan(StatusCancelled, a), "cancelled is terminal")
	}
}

func TestOwnerCan(t *testing.T) {
	assert.True(t, OwnerCan(StatusPending, ActionCancel))
	assert.False(t, OwnerCan(StatusPending, ActionConfirm))
	assert.False(t, OwnerCan(StatusPending, ActionReject))

	assert.True(t, OwnerCan(StatusApproved, ActionReverse))
	assert.False(t, OwnerCan(StatusApproved, ActionCancel))

	assert.False(t, OwnerCan(StatusReverse, ActionCancel))
	assert.False(t, OwnerCan(StatusCancelled, ActionCancel))
}

func TestEditable(t *testing.T) {
	assert.True(t, Editable(StatusPending))
	assert.False(t, Editable(StatusApproved))
	assert.False(t, Editable(StatusReverse))
	assert.False(t, Editable(StatusCancelled))
}

// Every manager/owner action must also be a legal transition, so action
// lists can never advertise a move NextStatus would refuse.
func TestActionListsMatchTransitions(t *testing.T) {
	for status, actions := range managerActions {
		for _, a := range actions {
			_, err := NextStatus(status, a)
			assert.NoError(t, err, "manager action %s on %s", a, status)
		}
	}
	for status, actions := range ownerActions {
		for _, a := range actions {
			_, err := NextStatus(status, a)
			assert.NoError(t, err, "owner action %s on %s", a, status)
		}
	}
}
