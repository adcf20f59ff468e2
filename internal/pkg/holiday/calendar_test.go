package holiday

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026", r.URL.Query().Get("year"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"holiday_date": "2026-1-1", "holiday_name": "Tahun Baru", "is_national_holiday": true},
			{"holiday_date": "2026-3-19", "holiday_name": "Hari Raya Nyepi", "is_national_holiday": true},
			{"holiday_date": "2026-2-14", "holiday_name": "Hari Valentine", "is_national_holiday": false}
		]`))
	}))
	defer server.Close()

	c := NewCalendar(server.URL)
	require.NoError(t, c.Refresh(context.Background(), 2026))
	require.True(t, c.HasYear(2026))

	ok, name := c.IsHoliday(time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, "Tahun Baru", name)

	// Non-national entries are dropped.
	ok, _ = c.IsHoliday(time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)

	holidays := c.ListYear(2026)
	require.Len(t, holidays, 2)
	assert.Equal(t, "2026-01-01", holidays[0].Date)
	assert.Equal(t, "2026-03-19", holidays[1].Date)
}

func TestRefresh_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewCalendar(server.URL)
	assert.Error(t, c.Refresh(context.Background(), 2026))
	assert.False(t, c.HasYear(2026))
}

func TestIsHoliday_UnknownYear(t *testing.T) {
	c := NewCalendar("")
	ok, name := c.IsHoliday(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
	assert.Empty(t, name)
}

func TestSeed(t *testing.T) {
	c := NewCalendar("")
	c.Seed(2026, map[string]string{"2026-08-17": "Hari Kemerdekaan"})

	ok, name := c.IsHoliday(time.Date(2026, 8, 17, 9, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, "Hari Kemerdekaan", name)
}
