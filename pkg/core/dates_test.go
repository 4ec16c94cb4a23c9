package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/broadsheet/pkg/core"
)

func TestParseDate(t *testing.T) {
	day := time.Date(2017, time.June, 5, 0, 0, 0, 0, time.UTC)
	stamp := time.Date(2017, time.June, 5, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		in     any
		want   time.Time
		wantOK bool
	}{
		{"Time", day, day, true},
		{"Pointer", &day, day, true},
		{"Date Only", "2017-06-05", day, true},
		{"RFC3339", "2017-06-05T14:30:00Z", stamp, true},
		{"No Zone", "2017-06-05T14:30:00", stamp, true},
		{"Space Separated", "2017-06-05 14:30:00", stamp, true},
		{"Long Form", "June 5, 2017", day, true},
		{"Padded", "  2017-06-05 ", day, true},
		{"Zero Time", time.Time{}, time.Time{}, false},
		{"Nil Pointer", (*time.Time)(nil), time.Time{}, false},
		{"Empty", "", time.Time{}, false},
		{"Garbage", "soon", time.Time{}, false},
		{"Number", 20170605, time.Time{}, false},
		{"Nil", nil, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := core.ParseDate(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}
