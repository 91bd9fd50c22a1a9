package words

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/draw-guess/internal/apperrors"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestPick_ReturnsMember(t *testing.T) {
	t.Parallel()

	b := NewDefault(seeded())
	for _, sel := range b.Selectors() {
		list := b.Words(sel.Language, sel.Category)
		for range 20 {
			w, err := b.Pick(sel.Language, sel.Category)
			require.NoError(t, err)
			assert.Contains(t, list, w)
		}
	}
}

func TestPick_InvalidSelector(t *testing.T) {
	t.Parallel()

	b := NewDefault(seeded())
	tests := []struct {
		name     string
		language string
		category string
	}{
		{"unknown language", "xx", "esyalar"},
		{"unknown category", "tr", "nope"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Pick(tt.language, tt.category)
			assert.ErrorIs(t, err, apperrors.ErrInvalidSelector)
			assert.False(t, b.Has(tt.language, tt.category))
		})
	}
}

func TestPickExcept(t *testing.T) {
	t.Parallel()

	b := New(Lists{"en": {"two": {"a", "b"}, "one": {"solo"}}}, seeded())

	for range 50 {
		w, err := b.PickExcept("en", "two", "a")
		require.NoError(t, err)
		assert.Equal(t, "b", w)
	}

	w, err := b.PickExcept("en", "one", "solo")
	require.NoError(t, err)
	assert.Equal(t, "solo", w, "single-word list may repeat")

	_, err = b.PickExcept("en", "missing", "a")
	assert.ErrorIs(t, err, apperrors.ErrInvalidSelector)
}

func TestBuiltinHasTurkishObjects(t *testing.T) {
	t.Parallel()

	b := NewDefault(nil)
	assert.True(t, b.Has("tr", "esyalar"))
	assert.True(t, b.Has("en", "objects"))
}

func TestEmptyCategoryIgnored(t *testing.T) {
	t.Parallel()

	b := New(Lists{"en": {"empty": {}}}, seeded())
	assert.False(t, b.Has("en", "empty"))
	assert.Empty(t, b.Selectors())
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "words.yaml")
	content := `
tr:
  esyalar: [tencere]
de:
  tiere: [katze, hund]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	b, err := LoadFile(path, seeded())
	require.NoError(t, err)

	assert.True(t, b.Has("de", "tiere"))
	assert.Contains(t, b.Words("tr", "esyalar"), "tencere")
	assert.Contains(t, b.Words("tr", "esyalar"), "masa", "built-in words are kept")
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	_, err := LoadFile("/nonexistent/words.yaml", nil)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tr: [::"), 0o600))
	_, err = LoadFile(path, nil)
	assert.Error(t, err)
}
