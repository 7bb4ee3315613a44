package jmdict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kotoba-backend/internal/domain"
)

func TestTagTable(t *testing.T) {
	t.Parallel()

	tt := newTagTable()
	tt.declare(map[string]string{"uk": "usually kana", "n": "noun"})
	tt.declare(map[string]string{"uk": "redeclared", "v1": "Ichidan verb"})

	require.NoError(t, tt.record("n"))
	require.NoError(t, tt.record("uk"))
	require.NoError(t, tt.record("n"))
	assert.Error(t, tt.record("vs-i"))

	assert.Equal(t, 2, tt.Len())
	assert.Equal(t, []domain.Tag{{Name: "n", Info: "noun"}, {Name: "uk", Info: "usually kana"}}, tt.Tags())

	tag, ok := tt.Lookup("uk")
	assert.True(t, ok)
	assert.Equal(t, "usually kana", tag.Info)

	_, ok = tt.Lookup("v1")
	assert.False(t, ok, "declared but unused entities are not part of the table")

	tags := tt.Tags()
	tags[0].Info = "changed"
	assert.Equal(t, "noun", tt.Tags()[0].Info)
}
