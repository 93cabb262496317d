package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRFC3339_RoundTrip(t *testing.T) {
	moment := time.Date(2009, time.June, 12, 20, 30, 0, 0, time.FixedZone("EST", -5*3600))

	formatted := FormatRFC3339(moment)
	assert.Equal(t, "2009-06-13T01:30:00Z", formatted)

	parsed, err := ParseRFC3339(formatted)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(moment))
}

func TestNowRFC3339_Parses(t *testing.T) {
	parsed, err := ParseRFC3339(NowRFC3339())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)
}
