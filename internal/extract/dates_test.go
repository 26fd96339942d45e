package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostTime(t *testing.T) {
	tests := []struct {
		name     string
		datePart string
		timePart string
		want     time.Time
	}{
		{
			name:     "afternoon",
			datePart: "January 5, 2015",
			timePart: "2:30 PM",
			want:     time.Date(2015, time.January, 5, 14, 30, 0, 0, time.UTC),
		},
		{
			name:     "morning",
			datePart: "January 5, 2015",
			timePart: "11:15 AM",
			want:     time.Date(2015, time.January, 5, 11, 15, 0, 0, time.UTC),
		},
		{
			name:     "abbreviated month",
			datePart: "Jan 5, 2015",
			timePart: "2:30 PM",
			want:     time.Date(2015, time.January, 5, 14, 30, 0, 0, time.UTC),
		},
		{
			// Standard conversion, not the upstream template's add-12 rule.
			name:     "noon",
			datePart: "Mar 1, 2016",
			timePart: "12:00 PM",
			want:     time.Date(2016, time.March, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "midnight",
			datePart: "Mar 1, 2016",
			timePart: "12:00 AM",
			want:     time.Date(2016, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "lowercase meridiem with padding",
			datePart: "Jan 5, 2015",
			timePart: " 9:05 pm ",
			want:     time.Date(2015, time.January, 5, 21, 5, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PostTime(tt.datePart, tt.timePart)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPostTimeRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name     string
		datePart string
		timePart string
	}{
		{"24-hour clock", "Jan 5, 2015", "14:30"},
		{"no minutes", "Jan 5, 2015", "2 PM"},
		{"hour out of range", "Jan 5, 2015", "13:30 PM"},
		{"minute out of range", "Jan 5, 2015", "2:61 PM"},
		{"garbage time", "Jan 5, 2015", "yesterday"},
		{"garbage date", "someday", "2:30 PM"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PostTime(tt.datePart, tt.timePart)
			require.Error(t, err)

			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestSplitDateTitle(t *testing.T) {
	datePart, timePart, err := SplitDateTitle("January 5, 2015 at 2:30 PM")
	require.NoError(t, err)
	assert.Equal(t, "January 5, 2015", datePart)
	assert.Equal(t, "2:30 PM", timePart)

	_, _, err = SplitDateTitle("January 5, 2015")
	require.Error(t, err)
}
