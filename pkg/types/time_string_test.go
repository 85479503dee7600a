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
		{name: "hh:mm", input: "19:30", want: "19:30"},
		{name: "with seconds", input: "19:30:00", want: "19:30"},
		{name: "garbage", input: "7pm", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
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

func TestTimeString_Arithmetic(t *testing.T) {
	ts := TimeString("19:00")
	assert.Equal(t, 19*60, ts.Minutes())

	later, err := ts.AddMinutes(89)
	require.NoError(t, err)
	assert.Equal(t, TimeString("20:29"), later)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	assert.True(t, TimeString("11:30").IsBefore("12:00"))
	assert.True(t, TimeString("21:00").IsAfter("20:30"))
}

func TestFromMinutes_Clamps(t *testing.T) {
	assert.Equal(t, TimeString("00:00"), FromMinutes(-30))
	assert.Equal(t, TimeString("23:59"), FromMinutes(25*60))
	assert.Equal(t, TimeString("01:29"), FromMinutes(89))
}

func TestTimeString_ScanValue(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("18:45:00")))
	assert.Equal(t, TimeString("18:45"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 9, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:05"), ts)

	v, err := TimeString("18:45").Value()
	require.NoError(t, err)
	assert.Equal(t, "18:45:00", v)

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	date := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	got := TimeString("19:30").On(date, loc)
	assert.Equal(t, time.Date(2026, 2, 20, 19, 30, 0, 0, loc), got)
}
