package birthday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"applebot/internal/domain"
)

var today = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestAge(t *testing.T) {
	tests := []struct {
		name string
		born time.Time
		want int
	}{
		{
			name: "Birthday already passed this year",
			born: time.Date(2000, 1, 10, 0, 0, 0, 0, time.UTC),
			want: 25,
		},
		{
			name: "Birthday later this year",
			born: time.Date(2000, 12, 25, 0, 0, 0, 0, time.UTC),
			want: 24,
		},
		{
			name: "Birthday is today",
			born: time.Date(2007, 6, 15, 0, 0, 0, 0, time.UTC),
			want: 18,
		},
		{
			name: "Birthday is tomorrow",
			born: time.Date(2007, 6, 16, 0, 0, 0, 0, time.UTC),
			want: 17,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Age(tt.born, today))
		})
	}
}

func TestAssigner_Check(t *testing.T) {
	a := NewAssigner(13)

	tests := []struct {
		name         string
		input        string
		wantErr      error
		wantRole     Role
		wantAge      int
		wantTooYoung bool
	}{
		{
			name:     "Adult",
			input:    "06/15/1990",
			wantRole: RoleAdult,
			wantAge:  35,
		},
		{
			name:     "Minor above minimum age",
			input:    "06/15/2010",
			wantRole: RoleMinor,
			wantAge:  15,
		},
		{
			name:     "Adult on the exact 18th birthday",
			input:    "06/15/2007",
			wantRole: RoleAdult,
			wantAge:  18,
		},
		{
			name:         "Below minimum age",
			input:        "06/15/2015",
			wantRole:     RoleMinor,
			wantAge:      10,
			wantTooYoung: true,
		},
		{
			name:    "Future birthdate",
			input:   "06/16/2025",
			wantErr: domain.ErrBirthdateInFuture,
		},
		{
			name:    "Not a date",
			input:   "hello",
			wantErr: domain.ErrBirthdateFormat,
		},
		{
			name:    "Wrong format (DD/MM/YYYY with day first)",
			input:   "25/12/1990",
			wantErr: domain.ErrBirthdateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := a.Check("steven", tt.input, today)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, v.Role)
			assert.Equal(t, tt.wantAge, v.Age)
			assert.Equal(t, tt.wantTooYoung, v.TooYoung)
		})
	}
}

func TestAssigner_Check_Command(t *testing.T) {
	a := NewAssigner(0)
	v, err := a.Check("steven", "09/24/1994", today)
	require.NoError(t, err)
	assert.Equal(t, "/override set-birthday target:@steven date:24 September", v.Command)
}
