package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"applebot/internal/domain"
)

var testStart = time.Date(2025, 3, 14, 14, 0, 0, 0, time.UTC)

func TestNewPlan(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		want    []int
		wantErr error
	}{
		{
			name:    "Should sort descending and deduplicate",
			offsets: []int{30, 60, 30, 0, 15},
			want:    []int{60, 30, 15, 0},
		},
		{
			name:    "Should drop negative offsets",
			offsets: []int{60, -5, 30},
			want:    []int{60, 30},
		},
		{
			name:    "Should fail on empty list",
			offsets: []int{},
			wantErr: domain.ErrInvalidConfiguration,
		},
		{
			name:    "Should fail when everything is filtered out",
			offsets: []int{-1, -30},
			wantErr: domain.ErrInvalidConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := NewPlan(testStart, tt.offsets)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, plan.offsets)
			assert.False(t, plan.IsExhausted())
		})
	}
}

func TestPlan_FiringInstant(t *testing.T) {
	plan, err := NewPlan(testStart, []int{60, 30, 0})
	require.NoError(t, err)

	assert.Equal(t, testStart.Add(-time.Hour), plan.FiringInstant(60))
	assert.Equal(t, testStart, plan.FiringInstant(0))
}

func TestPlan_DueOffsets(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want []int
	}{
		{
			name: "Nothing due well before the first offset",
			now:  testStart.Add(-2 * time.Hour),
			want: nil,
		},
		{
			name: "First offset due exactly at its instant",
			now:  testStart.Add(-60 * time.Minute),
			want: []int{60},
		},
		{
			name: "Late tick catches up all passed offsets, descending",
			now:  testStart.Add(-10 * time.Minute),
			want: []int{60, 30, 15},
		},
		{
			name: "All offsets due at start time",
			now:  testStart,
			want: []int{60, 30, 15, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := NewPlan(testStart, []int{60, 30, 15, 0})
			require.NoError(t, err)
			assert.Equal(t, tt.want, plan.DueOffsets(tt.now))
		})
	}
}

func TestPlan_MarkFired(t *testing.T) {
	plan, err := NewPlan(testStart, []int{60, 30, 0})
	require.NoError(t, err)

	plan.MarkFired(60)
	assert.Equal(t, []int{30, 0}, plan.DueOffsets(testStart))

	// A fired offset never becomes due again, even at the same now.
	plan.MarkFired(60)
	assert.Equal(t, []int{30, 0}, plan.DueOffsets(testStart))
	assert.Equal(t, []int{60}, plan.FiredOffsets())

	// Offsets outside the plan are ignored and must not affect exhaustion.
	plan.MarkFired(45)
	assert.False(t, plan.IsExhausted())

	plan.MarkFired(30)
	plan.MarkFired(0)
	assert.True(t, plan.IsExhausted())
	assert.Empty(t, plan.DueOffsets(testStart.Add(time.Hour)))
}

func TestPlan_Rebase(t *testing.T) {
	plan, err := NewPlan(testStart, []int{60, 30})
	require.NoError(t, err)
	plan.MarkFired(60)

	// Moving the start later must not un-fire nor re-fire offset 60.
	newStart := testStart.Add(2 * time.Hour)
	plan.Rebase(newStart)
	assert.Equal(t, []int{60}, plan.FiredOffsets())
	assert.Equal(t, newStart.Add(-30*time.Minute), plan.FiringInstant(30))
	assert.NotContains(t, plan.DueOffsets(newStart.Add(-90*time.Minute)), 60)

	// Moving the start into the past fires the rest late rather than never.
	plan.Rebase(testStart.Add(-time.Hour))
	assert.Equal(t, []int{30}, plan.DueOffsets(testStart))
}

func TestPlan_DuplicateFiringInstants(t *testing.T) {
	// Equal instants are possible when start time equals an offset boundary;
	// each offset still fires independently, descending.
	plan, err := NewPlan(testStart, []int{2, 1, 0})
	require.NoError(t, err)

	due := plan.DueOffsets(testStart)
	assert.Equal(t, []int{2, 1, 0}, due)
	for _, offset := range due {
		plan.MarkFired(offset)
	}
	assert.True(t, plan.IsExhausted())
}
