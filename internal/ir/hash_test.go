package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintDeterminism(t *testing.T) {
	v := map[string]any{"day": "庚辰", "hour": "癸未"}

	a, err := Fingerprint(DomainChart, v)
	require.NoError(t, err)
	b, err := Fingerprint(DomainChart, map[string]any{"hour": "癸未", "day": "庚辰"})
	require.NoError(t, err)

	assert.Equal(t, a, b, "key order must not matter")
	assert.Len(t, a, 64, "SHA-256 hex is 64 characters")
}

func TestFingerprintDomainSeparation(t *testing.T) {
	v := map[string]any{"x": 1}
	assert.NotEqual(t, MustFingerprint(DomainChart, v), MustFingerprint(DomainTable, v))
}

func TestFingerprintRejectsFloats(t *testing.T) {
	_, err := Fingerprint(DomainChart, map[string]any{"age": 3.5})
	assert.Error(t, err)
	assert.Panics(t, func() { MustFingerprint(DomainChart, 3.5) })
}
