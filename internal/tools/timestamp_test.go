package tools

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2023, 11, 15, 22, 13, 20, 0, time.UTC)

func TestParseTimestamp_Seconds(t *testing.T) {
	conv, err := ParseTimestamp("1700000000", refNow, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), conv.Unix)
	assert.Equal(t, int64(1700000000000), conv.UnixMilli)
	assert.Equal(t, "2023-11-14T22:13:20.000Z", conv.ISO8601)
	assert.Equal(t, "1 day ago", conv.Relative)
}

func TestParseTimestamp_Milliseconds(t *testing.T) {
	conv, err := ParseTimestamp("1700000000123", refNow, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), conv.Unix)
	assert.Equal(t, int64(1700000000123), conv.UnixMilli)
	assert.Equal(t, "2023-11-14T22:13:20.123Z", conv.ISO8601)
}

func TestParseTimestamp_ISORoundTrip(t *testing.T) {
	for _, sec := range []int64{0, 1, 946684800, 1700000000, 4102444800} {
		conv, err := ParseTimestamp(strconv.FormatInt(sec, 10), refNow, nil)
		require.NoError(t, err)

		back, err := ParseTimestamp(conv.ISO8601, refNow, nil)
		require.NoError(t, err)
		assert.Equal(t, sec, back.Unix)
	}
}

func TestParseTimestamp_DateLayouts(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	conv, err := ParseTimestamp("2023-11-15 00:13:20", refNow, loc)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), conv.Unix)
	assert.Equal(t, "UTC+2", conv.Zone)

	conv, err = ParseTimestamp("2023-11-16", refNow, nil)
	require.NoError(t, err)
	assert.Equal(t, "2023-11-16T00:00:00.000Z", conv.ISO8601)
	assert.Contains(t, conv.Relative, "from now")
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, in := range []string{"", "yesterday", "17000000001234", "12:30"} {
		_, err := ParseTimestamp(in, refNow, nil)
		assert.ErrorIs(t, err, ErrInvalidTimestamp, in)
	}
}
