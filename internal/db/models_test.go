package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(hour int) time.Time {
	return time.Date(2025, 6, 1, hour, 0, 0, 0, time.UTC)
}

func TestReservationOverlapsWindow(t *testing.T) {
	res := &Reservation{StartTime: ts(10), EndTime: ts(12)}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"identical window", ts(10), ts(12), true},
		{"contained window", ts(10).Add(30 * time.Minute), ts(11), true},
		{"containing window", ts(9), ts(13), true},
		{"overlap at front", ts(9), ts(11), true},
		{"overlap at back", ts(11), ts(13), true},
		{"touching before", ts(8), ts(10), false},
		{"touching after", ts(12), ts(14), false},
		{"disjoint before", ts(7), ts(8), false},
		{"disjoint after", ts(13), ts(14), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, res.OverlapsWindow(tt.start, tt.end))
		})
	}
}

// The half-open law: [a1,a2) and [b1,b2) overlap iff a1 < b2 && b1 < a2, and
// the relation is symmetric.
func TestOverlapSymmetry(t *testing.T) {
	windows := [][2]time.Time{
		{ts(8), ts(10)},
		{ts(9), ts(11)},
		{ts(10), ts(12)},
		{ts(12), ts(13)},
	}
	for _, a := range windows {
		for _, b := range windows {
			ra := &Reservation{StartTime: a[0], EndTime: a[1]}
			rb := &Reservation{StartTime: b[0], EndTime: b[1]}
			want := a[0].Before(b[1]) && b[0].Before(a[1])
			assert.Equal(t, want, ra.OverlapsWindow(b[0], b[1]))
			assert.Equal(t, ra.OverlapsWindow(b[0], b[1]), rb.OverlapsWindow(a[0], a[1]),
				"overlap must be symmetric")
		}
	}
}

func TestBlocking(t *testing.T) {
	assert.True(t, (&Reservation{Status: StatusPending}).Blocking())
	assert.True(t, (&Reservation{Status: StatusConfirmed}).Blocking())
	assert.False(t, (&Reservation{Status: StatusCanceled}).Blocking())
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("officer")
	require.NoError(t, err)
	assert.Equal(t, RoleOfficer, role)

	role, err = ParseRole(" USER ")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, role)

	_, err = ParseRole("ADMIN")
	assert.Error(t, err)
}

func TestParseReservationStatus(t *testing.T) {
	status, err := ParseReservationStatus("pending")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, status)

	_, err = ParseReservationStatus("COMPLETED")
	assert.Error(t, err, "COMPLETED is not a status the backend knows")
}

func TestParsePaymentMethod(t *testing.T) {
	method, err := ParsePaymentMethod("cash")
	require.NoError(t, err)
	assert.Equal(t, PaymentCash, method)

	_, err = ParsePaymentMethod("CRYPTO")
	assert.Error(t, err)
}
