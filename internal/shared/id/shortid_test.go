package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWithPrefix(t *testing.T) {
	sid, err := GenerateWithPrefix(PrefixSubscription, DefaultLength)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sid, "sub_"))
	assert.Len(t, sid, len(PrefixSubscription)+1+DefaultLength)
}

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := MustGenerate(DefaultLength)
		assert.False(t, seen[id], "duplicate ID %s", id)
		seen[id] = true
	}
}

func TestParsePrefixedID(t *testing.T) {
	prefix, short, err := ParsePrefixedID("zone_xK9mP2vL3nQa")
	require.NoError(t, err)
	assert.Equal(t, "zone", prefix)
	assert.Equal(t, "xK9mP2vL3nQa", short)

	_, _, err = ParsePrefixedID("nounderscore")
	assert.Error(t, err)
}

func TestValidatePrefix(t *testing.T) {
	assert.NoError(t, ValidatePrefix("route_abc123", PrefixRoute))
	assert.Error(t, ValidatePrefix("sub_abc123", PrefixRoute))
	assert.Error(t, ValidatePrefix("garbage", PrefixRoute))
}

func TestExtractShortID(t *testing.T) {
	short, err := ExtractShortID("btl_abc123", PrefixBottle)
	require.NoError(t, err)
	assert.Equal(t, "abc123", short)

	_, err = ExtractShortID("zov_abc123", PrefixBottle)
	assert.Error(t, err)
}
