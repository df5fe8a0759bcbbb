package abif

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTrace() []*Entry {
	return []*Entry{
		NewChars("PBAS", 2, []byte("ACGTN")),
		NewChars("PCON", 2, []byte{40, 38, 20, 12, 2}),
		NewPString("SMPL", 1, "sample_01"),
		NewShorts("DATA", 9, []int16{0, 10, 250, 10}),
		NewShorts("DATA", 10, []int16{1, 2, 3, 4}),
		NewShorts("DATA", 11, []int16{-1, 400, 3, 0}),
		NewShorts("DATA", 12, []int16{7, 7, 7, 7}),
		NewChars("FWO_", 1, []byte("GATC")),
	}
}

func encode(t *testing.T, entries []*Entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, 101, entries))
	return buf.Bytes()
}

func TestDecodeRoundTrip(t *testing.T) {
	f, err := Decode(encode(t, testTrace()))
	require.NoError(t, err)

	assert.Equal(t, uint16(101), f.Version)
	require.Len(t, f.Entries, 8)

	calls, err := f.Basecalls()
	require.NoError(t, err)
	assert.Equal(t, "ACGTN", calls)

	quals, err := f.Qualities()
	require.NoError(t, err)
	assert.Equal(t, []byte{40, 38, 20, 12, 2}, quals)

	assert.Equal(t, "sample_01", f.SampleName())

	ch, err := f.Channels(ChannelKeys...)
	require.NoError(t, err)
	assert.Equal(t, []int16{-1, 400, 3, 0}, ch["DATA11"])
	assert.Len(t, ch, 4)

	// Four bytes of data are stored inline in the offset field.
	fwo, err := f.Entry("FWO_1")
	require.NoError(t, err)
	s, err := fwo.Text()
	require.NoError(t, err)
	assert.Equal(t, "GATC", s)
}

func TestBasecallsFallback(t *testing.T) {
	f, err := Decode(encode(t, []*Entry{
		NewChars("PBAS", 1, []byte("GGCC")),
		NewChars("PCON", 1, []byte{30, 30, 30, 30}),
	}))
	require.NoError(t, err)

	calls, err := f.Basecalls()
	require.NoError(t, err)
	assert.Equal(t, "GGCC", calls)
	assert.Equal(t, "", f.SampleName())
}

func TestChannelsMissing(t *testing.T) {
	entries := testTrace()
	var kept []*Entry
	for _, e := range entries {
		if e.Key() != "DATA12" {
			kept = append(kept, e)
		}
	}
	f, err := Decode(encode(t, kept))
	require.NoError(t, err)

	_, err = f.Channels(ChannelKeys...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoTag))
	assert.Contains(t, err.Error(), "DATA12")
	assert.False(t, f.Has("DATA12"))
}

func TestDecodeErrors(t *testing.T) {
	good := encode(t, testTrace())

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{name: "Empty", data: nil, want: ErrNotABIF},
		{name: "WrongMagic", data: append([]byte("FIBA"), good[4:]...), want: ErrNotABIF},
		{name: "TruncatedDirectory", data: good[:len(good)-10], want: ErrMalformed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.data)
			assert.True(t, errors.Is(err, tc.want), "got %v, want %v", err, tc.want)
		})
	}
}

func TestEntryTypeMismatch(t *testing.T) {
	e := NewShorts("DATA", 9, []int16{1})
	_, err := e.Bytes()
	assert.True(t, errors.Is(err, ErrType))

	c := NewChars("PBAS", 2, []byte("AC"))
	_, err = c.Shorts()
	assert.True(t, errors.Is(err, ErrType))
}

func TestCString(t *testing.T) {
	e := &Entry{Name: "CMNT", Number: 1, ElementType: TypeCString, ElementSize: 1,
		NumElements: 6, Data: []byte("hello\x00")}
	s, err := e.Text()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "read.ab1")
	require.NoError(t, os.WriteFile(path, encode(t, testTrace()), 0o644))

	f, err := Open(path)
	require.NoError(t, err)
	assert.True(t, f.Has("PBAS2"))

	_, err = Open(filepath.Join(t.TempDir(), "missing.ab1"))
	assert.Error(t, err)
}
