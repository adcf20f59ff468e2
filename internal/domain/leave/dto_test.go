package leave

import (
	"testing"
	"time"

	"github.com/kantorkita/hr-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyLeaveRequest_Validate(t *testing.T) {
	valid := ApplyLeaveRequest{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
		Reason:    "Family matters",
	}
	assert.NoError(t, valid.Validate())

	t.Run("end before start", func(t *testing.T) {
		req := valid
		req.StartDate = "2026-03-04"
		req.EndDate = "2026-03-02"
		err := req.Validate()
		require.Error(t, err)

		errs, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		assert.Contains(t, errs.ToMap(), "end_date")
	})

	t.Run("missing fields", func(t *testing.T) {
		req := ApplyLeaveRequest{}
		err := req.Validate()
		require.Error(t, err)

		errs := err.(validator.ValidationErrors).ToMap()
		assert.Contains(t, errs, "start_date")
		assert.Contains(t, errs, "end_date")
		assert.Contains(t, errs, "reason")
	})

	t.Run("bad date format", func(t *testing.T) {
		req := valid
		req.StartDate = "02-03-2026"
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.(validator.ValidationErrors).ToMap(), "start_date")
	})

	t.Run("reason too long", func(t *testing.T) {
		req := valid
		req.Reason = string(make([]byte, 501))
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.(validator.ValidationErrors).ToMap(), "reason")
	})
}

func TestUpdateLeaveRequest_Validate(t *testing.T) {
	req := UpdateLeaveRequest{
		ID:        "0192d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-02",
		Reason:    "Single day",
	}
	assert.NoError(t, req.Validate())

	req.ID = ""
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.(validator.ValidationErrors).ToMap(), "id")
}

func TestAllocationRequest_Validate(t *testing.T) {
	req := AllocationRequest{UserID: "u1", Year: 2026, TotalDays: 12}
	assert.NoError(t, req.Validate())

	bad := []AllocationRequest{
		{UserID: "", Year: 2026, TotalDays: 12},
		{UserID: "u1", Year: 1990, TotalDays: 12},
		{UserID: "u1", Year: 2026, TotalDays: -1},
		{UserID: "u1", Year: 2026, TotalDays: 400},
	}
	for i, req := range bad {
		assert.Error(t, req.Validate(), "case %d", i)
	}
}

func TestToEntry(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	lr := LeaveRequest{
		ID:          "req-1",
		UserID:      "user-1",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 2),
		TotalDays:   3,
		Reason:      "Trip",
		Status:      StatusPending,
		SubmittedAt: start,
	}

	owner := ToEntry(lr, true)
	assert.Equal(t, "2026-03-02", owner.StartDate)
	assert.Equal(t, "2026-03-04", owner.EndDate)
	assert.Equal(t, []Action{ActionCancel}, owner.AvailableActions)

	manager := ToEntry(lr, false)
	assert.ElementsMatch(t, []Action{ActionConfirm, ActionReject}, manager.AvailableActions)

	lr.Status = StatusCancelled
	terminal := ToEntry(lr, false)
	assert.NotNil(t, terminal.AvailableActions)
	assert.Empty(t, terminal.AvailableActions)
}
