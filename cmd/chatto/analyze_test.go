package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chattolabs/chatto/internal/api"
)

func TestParseKind(t *testing.T) {
	for _, arg := range []string{"chemi", "some", "mbti", "contrib"} {
		kind, err := parseKind(arg)
		require.NoError(t, err)
		assert.Equal(t, api.Kind(arg), kind)
	}

	_, err := parseKind("vibes")
	assert.Error(t, err)
}

func TestBuildParams(t *testing.T) {
	t.Cleanup(func() {
		anRelation, anDateFrom, anDateTo = "", "", ""
	})

	t.Run("defaults to sentinels", func(t *testing.T) {
		anRelation, anDateFrom, anDateTo = "", "", ""
		params, err := buildParams(api.KindChemi)
		require.NoError(t, err)
		assert.Equal(t, api.NotProvided, params.Relation)
		assert.Equal(t, api.NotProvided, params.DateFrom)
		assert.Equal(t, api.NotProvided, params.DateTo)
	})

	t.Run("normalizes short dates", func(t *testing.T) {
		anRelation, anDateFrom, anDateTo = "친구", "250101", "25.03.15"
		params, err := buildParams(api.KindChemi)
		require.NoError(t, err)
		assert.Equal(t, "친구", params.Relation)
		assert.Equal(t, "2025-01-01", params.DateFrom)
		assert.Equal(t, "2025-03-15", params.DateTo)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		anRelation, anDateFrom, anDateTo = "", "jan 1st", ""
		_, err := buildParams(api.KindChemi)
		assert.Error(t, err)
	})
}
