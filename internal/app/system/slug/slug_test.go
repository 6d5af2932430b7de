package slug_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dalemusser/edupath/internal/app/system/slug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Study in Canada", "study-in-canada"},
		{"  IELTS: 7.5+ Tips!!  ", "ielts-7-5-tips"},
		{"Université de Montréal", "universite-de-montreal"},
		{"Straße München", "strasse-munchen"},
		{"---", slug.Fallback},
		{"", slug.Fallback},
		{"UK  &  Ireland", "uk-ireland"},
		{"2025 Intake", "2025-intake"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := slug.Generate(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, slug.IsValid(got), "generated slug %q should be valid", got)
		})
	}
}

func TestGenerate_ShapeProperty(t *testing.T) {
	inputs := []string{
		"Hello, World", "a--b", "-lead", "trail-", "Ünïcödé Tïtle", "日本 留学", "tab\tand\nnewline", "$$$ money $$$",
	}
	for _, in := range inputs {
		got := slug.Generate(in)
		assert.True(t, slug.IsValid(got), "Generate(%q) = %q", in, got)
		assert.Equal(t, strings.ToLower(got), got)
	}
}

func setExists(taken map[string]bool) slug.ExistsFunc {
	return func(_ context.Context, c string) (bool, error) { return taken[c], nil }
}

func TestUnique(t *testing.T) {
	ctx := context.Background()

	got, err := slug.Unique(ctx, "study-in-canada", setExists(nil))
	require.NoError(t, err)
	assert.Equal(t, "study-in-canada", got)

	got, err = slug.Unique(ctx, "study-in-canada", setExists(map[string]bool{"study-in-canada": true}))
	require.NoError(t, err)
	assert.Equal(t, "study-in-canada-1", got)
}

func TestUnique_RepeatedCollisionsIncrease(t *testing.T) {
	ctx := context.Background()
	taken := map[string]bool{}
	var got []string
	for i := 0; i < 4; i++ {
		s, err := slug.Unique(ctx, "visa", setExists(taken))
		require.NoError(t, err)
		taken[s] = true
		got = append(got, s)
	}
	assert.Equal(t, []string{"visa", "visa-1", "visa-2", "visa-3"}, got)
}

func TestUnique_PropagatesProbeError(t *testing.T) {
	boom := errors.New("store down")
	_, err := slug.Unique(context.Background(), "x", func(context.Context, string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestUnique_Exhausted(t *testing.T) {
	_, err := slug.Unique(context.Background(), "x", func(context.Context, string) (bool, error) {
		return true, nil
	})
	assert.ErrorIs(t, err, slug.ErrExhausted)
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, "1 min read", slug.ReadTime(""))
	assert.Equal(t, "1 min read", slug.ReadTime("one two three"))
	assert.Equal(t, "1 min read", slug.ReadTime(strings.Repeat("word ", 200)))
	assert.Equal(t, "2 min read", slug.ReadTime(strings.Repeat("word ", 201)))
	assert.Equal(t, "2 min read", slug.ReadTime(strings.Repeat("word ", 400)))
	assert.Equal(t, "3 min read", slug.ReadTime(strings.Repeat("word\n", 401)))
}

func TestIsValid(t *testing.T) {
	assert.True(t, slug.IsValid("study-in-canada-1"))
	assert.False(t, slug.IsValid(""))
	assert.False(t, slug.IsValid("-a"))
	assert.False(t, slug.IsValid("a-"))
	assert.False(t, slug.IsValid("a--b"))
	assert.False(t, slug.IsValid("Upper"))
	assert.False(t, slug.IsValid("a_b"))
}
