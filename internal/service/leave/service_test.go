package leave

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/kantorkita/hr-backend-go/internal/domain/attendance"
	"github.com/kantorkita/hr-backend-go/internal/domain/leave"
	"github.com/kantorkita/hr-backend-go/internal/pkg/database"
	"github.com/kantorkita/hr-backend-go/internal/pkg/sse"
	"github.com/kantorkita/hr-backend-go/internal/pkg/validator"
	"github.com/kantorkita/hr-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLeaveDB *database.DB

// leaveTestInit connects to the test database and applies the schema. Tests
// are skipped entirely when TEST_DATABASE_URL is not set.
func leaveTestInit(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if testLeaveDB != nil {
		return
	}

	var err error
	testLeaveDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)

	schema, err := os.ReadFile("../../../migrations/0001_init.sql")
	require.NoError(t, err)
	_, err = testLeaveDB.Exec(context.Background(), string(schema))
	require.NoError(t, err)
}

func truncateLeaveTables(t *testing.T, ctx context.Context) {
	for _, table := range []string{"leave_requests", "leave_allocations", "users"} {
		_, err := testLeaveDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createLeaveTestUser(t *testing.T, ctx context.Context, role string) string {
	var userID string
	email := fmt.Sprintf("%s-%d@example.com", role, time.Now().UnixNano())
	err := testLeaveDB.QueryRow(ctx, `
		INSERT INTO users (full_name, email, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, 'active', NOW(), NOW())
		RETURNING id
	`, "Test "+role, email, role).Scan(&userID)
	require.NoError(t, err)
	return userID
}

func newLeaveTestService() leave.LeaveService {
	return NewLeaveService(
		testLeaveDB,
		postgresql.NewLeaveRequestRepository(testLeaveDB),
		postgresql.NewAllocationRepository(testLeaveDB),
		postgresql.NewUserRepository(testLeaveDB),
		sse.NewHub(),
	)
}

func futureDate(daysAhead int) string {
	return attendance.DayOf(time.Now()).AddDate(0, 0, daysAhead).Format("2006-01-02")
}

func TestLeaveService_ApplyAndListMine(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	userID := createLeaveTestUser(t, ctx, "staff")
	svc := newLeaveTestService()

	start := attendance.DayOf(time.Now()).AddDate(0, 0, 7)
	year := start.Year()

	entry, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		UserID:    userID,
		StartDate: start.Format("2006-01-02"),
		EndDate:   start.AddDate(0, 0, 2).Format("2006-01-02"),
		Reason:    "Family trip",
	})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusPending), entry.Status)
	assert.Equal(t, 3, entry.TotalDays)
	assert.Equal(t, []leave.Action{leave.ActionCancel}, entry.AvailableActions)

	resp, err := svc.ListMine(ctx, userID, leave.ListLeaveRequestsFilter{Year: &year, Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, resp.Requests, 1)
	assert.Equal(t, entry.ID, resp.Requests[0].ID)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, 3, resp.Summary.PendingDays)
}

func TestLeaveService_Apply_RejectsOverlap(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	userID := createLeaveTestUser(t, ctx, "staff")
	svc := newLeaveTestService()

	_, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		UserID:    userID,
		StartDate: futureDate(7),
		EndDate:   futureDate(9),
		Reason:    "First",
	})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, leave.ApplyLeaveRequest{
		UserID:    userID,
		StartDate: futureDate(9),
		EndDate:   futureDate(11),
		Reason:    "Overlaps the first",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
}

// The past-start check fires before any storage access, so no database is
// needed here. The error must carry a field map for a 422 response, not an
// opaque failure.
func TestLeaveService_Apply_RejectsPastStart(t *testing.T) {
	svc := NewLeaveService(nil, nil, nil, nil, nil)

	_, err := svc.Apply(context.Background(), leave.ApplyLeaveRequest{
		UserID:    "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		StartDate: futureDate(-1),
		EndDate:   futureDate(1),
		Reason:    "Too late",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "start_date")
}

func TestLeaveService_UpdateMine_RejectsPastStart(t *testing.T) {
	svc := NewLeaveService(nil, nil, nil, nil, nil)

	err := svc.UpdateMine(context.Background(), leave.UpdateLeaveRequest{
		ID:        "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		UserID:    "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8c",
		StartDate: futureDate(-3),
		EndDate:   futureDate(-1),
		Reason:    "Backdated",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "start_date")
}

func TestLeaveService_Apply_EnforcesAllocation(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	userID := createLeaveTestUser(t, ctx, "staff")
	svc := newLeaveTestService()

	start := time.Date(time.Now().Year()+1, time.June, 1, 0, 0, 0, 0, attendance.Location())
	_, err := svc.SetAllocation(ctx, leave.AllocationRequest{
		UserID:    userID,
		Year:      start.Year(),
		TotalDays: 2,
	})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, leave.ApplyLeaveRequest{
		UserID:    userID,
		StartDate: start.Format("2006-01-02"),
		EndDate:   start.AddDate(0, 0, 2).Format("2006-01-02"),
		Reason:    "Three days against a two day budget",
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestLeaveService_DecideFlow(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	staffID := createLeaveTestUser(t, ctx, "staff")
	managerID := createLeaveTestUser(t, ctx, "manager")
	svc := newLeaveTestService()

	entry, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		UserID:    staffID,
		StartDate: futureDate(7),
		EndDate:   futureDate(8),
		Reason:    "Approval flow",
	})
	require.NoError(t, err)

	notes := "Enjoy"
	err = svc.Decide(ctx, leave.DecideLeaveRequest{
		ID:        entry.ID,
		DeciderID: managerID,
		Action:    leave.ActionConfirm,
		Notes:     &notes,
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), got.Status)
	require.NotNil(t, got.ManagerNotes)
	assert.Equal(t, "Enjoy", *got.ManagerNotes)
	assert.NotNil(t, got.DecidedAt)

	// Confirming twice is not available.
	err = svc.Decide(ctx, leave.DecideLeaveRequest{
		ID:        entry.ID,
		DeciderID: managerID,
		Action:    leave.ActionConfirm,
	})
	assert.ErrorIs(t, err, leave.ErrActionNotAvailable)

	// Approved requests can be reversed.
	err = svc.Decide(ctx, leave.DecideLeaveRequest{
		ID:        entry.ID,
		DeciderID: managerID,
		Action:    leave.ActionReverse,
	})
	require.NoError(t, err)

	got, err = svc.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusReverse), got.Status)
}

func TestLeaveService_UpdateMine(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	staffID := createLeaveTestUser(t, ctx, "staff")
	otherID := createLeaveTestUser(t, ctx, "staff")
	managerID := createLeaveTestUser(t, ctx, "manager")
	svc := newLeaveTestService()

	entry, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		UserID:    staffID,
		StartDate: futureDate(7),
		EndDate:   futureDate(8),
		Reason:    "Original",
	})
	require.NoError(t, err)

	// Only the owner may edit.
	err = svc.UpdateMine(ctx, leave.UpdateLeaveRequest{
		ID:        entry.ID,
		UserID:    otherID,
		StartDate: futureDate(7),
		EndDate:   futureDate(8),
		Reason:    "Hijack",
	})
	assert.ErrorIs(t, err, leave.ErrNotRequestOwner)

	err = svc.UpdateMine(ctx, leave.UpdateLeaveRequest{
		ID:        entry.ID,
		UserID:    staffID,
		StartDate: futureDate(10),
		EndDate:   futureDate(12),
		Reason:    "Moved a week",
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalDays)
	assert.Equal(t, "Moved a week", got.Reason)

	// Approved requests are no longer editable.
	require.NoError(t, svc.Decide(ctx, leave.DecideLeaveRequest{
		ID:        entry.ID,
		DeciderID: managerID,
		Action:    leave.ActionConfirm,
	}))
	err = svc.UpdateMine(ctx, leave.UpdateLeaveRequest{
		ID:        entry.ID,
		UserID:    staffID,
		StartDate: futureDate(10),
		EndDate:   futureDate(12),
		Reason:    "Too late",
	})
	assert.ErrorIs(t, err, leave.ErrRequestNotEditable)
}

func TestLeaveService_CancelMine(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	staffID := createLeaveTestUser(t, ctx, "staff")
	svc := newLeaveTestService()

	entry, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		UserID:    staffID,
		StartDate: futureDate(7),
		EndDate:   futureDate(8),
		Reason:    "Will cancel",
	})
	require.NoError(t, err)

	require.NoError(t, svc.CancelMine(ctx, staffID, entry.ID))

	got, err := svc.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusCancelled), got.Status)

	// Cancelled is terminal.
	assert.ErrorIs(t, svc.CancelMine(ctx, staffID, entry.ID), leave.ErrActionNotAvailable)
}

func TestLeaveService_GetSummary(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	staffID := createLeaveTestUser(t, ctx, "staff")
	managerID := createLeaveTestUser(t, ctx, "manager")
	svc := newLeaveTestService()

	// Fixed in mid-year of the next calendar year so every request in this
	// test lands in the same allocation year.
	loc := attendance.Location()
	start := time.Date(time.Now().Year()+1, time.June, 1, 0, 0, 0, 0, loc)
	year := start.Year()

	_, err := svc.SetAllocation(ctx, leave.AllocationRequest{UserID: staffID, Year: year, TotalDays: 12})
	require.NoError(t, err)

	approved, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		UserID:    staffID,
		StartDate: start.Format("2006-01-02"),
		EndDate:   start.AddDate(0, 0, 1).Format("2006-01-02"),
		Reason:    "Approved leave",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Decide(ctx, leave.DecideLeaveRequest{
		ID:        approved.ID,
		DeciderID: managerID,
		Action:    leave.ActionConfirm,
	}))

	_, err = svc.Apply(ctx, leave.ApplyLeaveRequest{
		UserID:    staffID,
		StartDate: start.AddDate(0, 0, 14).Format("2006-01-02"),
		EndDate:   start.AddDate(0, 0, 16).Format("2006-01-02"),
		Reason:    "Still pending",
	})
	require.NoError(t, err)

	summary, err := svc.GetSummary(ctx, staffID, year)
	require.NoError(t, err)
	assert.Equal(t, 12, summary.TotalDays)
	assert.Equal(t, 2, summary.UsedDays)
	assert.Equal(t, 3, summary.PendingDays)
	assert.Equal(t, 7, summary.RemainingDays)
}
