package source

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_Enter(t *testing.T) {
	fs := NewFiles()
	a := fs.Enter("a.lang", "one")
	b := fs.Enter("b.lang", "two")
	require.NotEqual(t, a, b)
	assert.True(t, a.Exists())
	assert.Equal(t, 2, fs.Len())

	// re-entering keeps the ref
	again := fs.Enter("a.lang", "uno")
	assert.Equal(t, a, again)
	f, err := fs.File(a)
	require.NoError(t, err)
	assert.Equal(t, "uno", f.Source)

	ref, ok := fs.Lookup("b.lang")
	assert.True(t, ok)
	assert.Equal(t, b, ref)

	_, err = fs.File(FileRef(0))
	assert.True(t, errors.Is(err, ErrUnknownFile))
	_, err = fs.File(FileRef(42))
	assert.True(t, errors.Is(err, ErrUnknownFile))
}

func TestLoc_Source(t *testing.T) {
	fs := NewFiles()
	ref := fs.Enter("main.lang", "foo.bar(1)")

	text, ok := NewLoc(ref, 4, 7).Source(fs)
	assert.True(t, ok)
	assert.Equal(t, "bar", text)

	text, ok = NewLoc(ref, 3, 3).Source(fs)
	assert.True(t, ok)
	assert.Equal(t, "", text)

	_, ok = NewLoc(ref, 8, 20).Source(fs)
	assert.False(t, ok)
	_, ok = NewLoc(ref, 5, 4).Source(fs)
	assert.False(t, ok)
	_, ok = None().Source(fs)
	assert.False(t, ok)
}

func TestLoc_Contains(t *testing.T) {
	outer := NewLoc(1, 0, 10)
	assert.True(t, outer.Contains(NewLoc(1, 4, 7)))
	assert.True(t, outer.Contains(outer))
	assert.False(t, outer.Contains(NewLoc(1, 4, 11)))
	assert.False(t, outer.Contains(NewLoc(2, 4, 7)))
}

func TestLoc_Position(t *testing.T) {
	fs := NewFiles()
	ref := fs.Enter("main.lang", "x = 1\nfoo.bar(1)\n")

	begin, end, err := NewLoc(ref, 10, 13).Position(fs)
	require.NoError(t, err)
	assert.Equal(t, Detail{Line: 2, Column: 5}, begin)
	assert.Equal(t, Detail{Line: 2, Column: 8}, end)

	assert.Equal(t, "main.lang:2:5", NewLoc(ref, 10, 13).Show(fs))
	assert.Equal(t, "<none>", None().Show(fs))

	_, _, err = NewLoc(ref, 10, 100).Position(fs)
	assert.Error(t, err)
}

func TestDetailOffsetRoundTrip(t *testing.T) {
	fs := NewFiles()
	ref := fs.Enter("main.lang", "ab\n\ncde\nf")
	f, err := fs.File(ref)
	require.NoError(t, err)
	assert.Equal(t, 4, f.LineCount())

	for off := 0; off <= len(f.Source); off++ {
		d := OffsetToDetail(f, off)
		back, ok := DetailToOffset(f, d)
		require.True(t, ok, "offset %d", off)
		assert.Equal(t, off, back, "offset %d -> %+v", off, d)
	}

	_, ok := DetailToOffset(f, Detail{Line: 9, Column: 1})
	assert.False(t, ok)

	// past end of line clamps onto the newline
	off, ok := DetailToOffset(f, Detail{Line: 1, Column: 40})
	assert.True(t, ok)
	assert.Equal(t, 2, off)
}

func TestOffsets_Len(t *testing.T) {
	assert.Equal(t, uint32(3), Offsets{Begin: 4, End: 7}.Len())
	assert.Equal(t, uint32(0), Offsets{Begin: 7, End: 4}.Len())
}
