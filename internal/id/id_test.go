package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsUnique(t *testing.T) {
	seen := make(map[uuid.UUID]bool)
	for i := 0; i < 100; i++ {
		u := New()
		assert.NotEqual(t, uuid.Nil, u)
		assert.False(t, seen[u], "duplicate id %s", u)
		seen[u] = true
	}
}

func TestParse(t *testing.T) {
	want := uuid.MustParse("0b6c1f9e-2d4a-4c7e-9a1b-3f5e6d7c8b9a")

	got, err := Parse("0b6c1f9e-2d4a-4c7e-9a1b-3f5e6d7c8b9a")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = Parse("  0b6c1f9e-2d4a-4c7e-9a1b-3f5e6d7c8b9a\n")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"not-a-uuid",
		"00000000-0000-0000-0000-000000000000",
		"0b6c1f9e-2d4a-4c7e-9a1b",
	}
	for _, s := range tests {
		_, err := Parse(s)
		assert.Error(t, err, "Parse(%q)", s)
	}
}

func TestParseOptional(t *testing.T) {
	got, err := ParseOptional("")
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, got)

	_, err = ParseOptional("garbage")
	assert.Error(t, err)
}

func TestFormatAndShort(t *testing.T) {
	u := uuid.MustParse("0b6c1f9e-2d4a-4c7e-9a1b-3f5e6d7c8b9a")
	assert.Equal(t, "0b6c1f9e-2d4a-4c7e-9a1b-3f5e6d7c8b9a", Format(u))
	assert.Equal(t, "", Format(uuid.Nil))
	assert.Equal(t, "0b6c1f9e", Short(u))
	assert.Equal(t, "-", Short(uuid.Nil))
}
