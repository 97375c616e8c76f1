package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstMatchingRuleWins(t *testing.T) {
	policy, err := NewCachePolicy([]CacheRule{
		{Pattern: `.png$`, MaxAge: 100},
		{Pattern: `.*`, MaxAge: 200},
	}, 300)
	require.NoError(t, err)

	assert.Equal(t, "public,max-age=100", policy.Resolve("a.png"))
	assert.Equal(t, "public,max-age=200", policy.Resolve("a.html"))
}

func TestReversedRulesFallThrough(t *testing.T) {
	policy, err := NewCachePolicy([]CacheRule{
		{Pattern: `\.css$`, MaxAge: 100},
		{Pattern: `\.png$`, MaxAge: 200},
	}, 300)
	require.NoError(t, err)

	assert.Equal(t, "public,max-age=200", policy.Resolve("img/a.png"))
	assert.Equal(t, "public,max-age=300", policy.Resolve("index.html"))
}

func TestRulesIgnoreCase(t *testing.T) {
	policy, err := NewCachePolicy(defaultCacheRules(), defaultMaxAge)
	require.NoError(t, err)

	assert.Equal(t, "public,max-age=31536000", policy.Resolve("img/LOGO.PNG"))
	assert.Equal(t, "public,max-age=604800", policy.Resolve("app.Js"))
	assert.Equal(t, "public,max-age=86400", policy.Resolve("index.html"))
}

func TestNoRulesUsesDefault(t *testing.T) {
	policy, err := NewCachePolicy(nil, 42)
	require.NoError(t, err)

	assert.Equal(t, "public,max-age=42", policy.Resolve("anything"))
}

func TestMalformedRuleFailsAtConstruction(t *testing.T) {
	policy, err := NewCachePolicy([]CacheRule{{Pattern: `(unclosed`, MaxAge: 1}}, 1)

	assert.Nil(t, policy)
	assert.ErrorContains(t, err, "(unclosed")
}
