package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid time", input: "13:30", want: "13:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "last minute", input: "23:59", want: "23:59"},
		{name: "no leading zero", input: "9:00", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "out of range minute", input: "12:60", wantErr: true},
		{name: "garbage", input: "lunch", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr bool
	}{
		{name: "simple add", start: "13:00", minutes: 30, want: "13:30"},
		{name: "hour rollover", start: "13:45", minutes: 30, want: "14:15"},
		{name: "zero minutes", start: "13:00", minutes: 0, want: "13:00"},
		{name: "negative shift", start: "13:00", minutes: -60, want: "12:00"},
		{name: "crosses midnight", start: "23:50", minutes: 30, wantErr: true},
		{name: "exactly midnight", start: "23:30", minutes: 30, wantErr: true},
		{name: "negative underflow", start: "00:10", minutes: -30, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("12:00").IsBefore("13:00"))
	assert.False(t, TimeString("13:00").IsBefore("13:00"))
	assert.True(t, TimeString("14:00").IsAfter("13:59"))
	assert.True(t, TimeString("09:30").Equal("09:30"))
	assert.False(t, TimeString("09:30").Equal("09:31"))
}

func TestTimeString_At(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("13:30").At(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 13, 30, 0, 0, time.UTC), got)

	_, err = TimeString("bad").At(date)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     interface{}
		want    TimeString
		wantErr bool
	}{
		{name: "string HH:MM", src: "13:30", want: "13:30"},
		{name: "postgres TIME column", src: "13:30:00", want: "13:30"},
		{name: "bytes", src: []byte("09:15"), want: "09:15"},
		{name: "time.Time", src: time.Date(2026, 9, 15, 18, 45, 0, 0, time.UTC), want: "18:45"},
		{name: "nil resets", src: nil, want: ""},
		{name: "unsupported type", src: 42, wantErr: true},
		{name: "invalid string", src: "not-a-time", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts TimeString
			err := ts.Scan(tt.src)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ts)
		})
	}
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("13:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "13:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("25:00").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
