package main

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const readFastq = "@READ1\nATCGATCC\n+\nIIIIIIII\n"

func TestDecompressNative(t *testing.T) {
	in := writeGzipFile(t, "reads.fastq.gz", readFastq)

	out, err := Decompressor{}.Run(in)
	require.NoError(t, err)
	assert.Equal(t, in[:len(in)-len(".gz")], out)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, readFastq, string(content))
	assert.NoFileExists(t, in)
}

func TestDecompressNativeKeepsMode(t *testing.T) {
	in := writeGzipFile(t, "reads.fastq.gz", readFastq)
	require.NoError(t, os.Chmod(in, 0o600))

	out, err := Decompressor{}.Run(in)
	require.NoError(t, err)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestDecompressNativeErrors(t *testing.T) {
	t.Run("NotGzipSuffix", func(t *testing.T) {
		_, err := Decompressor{}.Run(writeFile(t, "reads.fastq", readFastq))
		assert.True(t, errors.Is(err, ErrNotGzip))
	})

	t.Run("OutputExists", func(t *testing.T) {
		in := writeGzipFile(t, "reads.fastq.gz", readFastq)
		require.NoError(t, os.WriteFile(in[:len(in)-3], []byte("keep"), 0o644))

		_, err := Decompressor{}.Run(in)
		assert.True(t, errors.Is(err, ErrOutputExists))
		assert.FileExists(t, in)
	})

	t.Run("CorruptData", func(t *testing.T) {
		in := writeFile(t, "reads.fastq.gz", "not gzip at all")
		_, err := Decompressor{}.Run(in)
		assert.Error(t, err)
		assert.FileExists(t, in)
		assert.NoFileExists(t, in[:len(in)-3])
	})
}

func TestDecompressGunzip(t *testing.T) {
	if _, err := exec.LookPath("gunzip"); err != nil {
		t.Skip("gunzip not installed")
	}

	in := writeGzipFile(t, "reads.fastq.gz", readFastq)
	out, err := Decompress(in)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(in), "reads.fastq"), out)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
	assert.NoFileExists(t, in)
}

func TestDecompressGunzipFailure(t *testing.T) {
	if _, err := exec.LookPath("gunzip"); err != nil {
		t.Skip("gunzip not installed")
	}

	in := writeFile(t, "reads.fastq.gz", "not gzip at all")
	_, err := Decompress(in)

	var de *DecompressError
	require.True(t, errors.As(err, &de), "got %v", err)
	assert.Equal(t, in, de.Path)
	assert.NotZero(t, de.ExitCode)
	assert.Contains(t, err.Error(), "exit status")
}

func TestDecompressMissingExecutable(t *testing.T) {
	in := writeGzipFile(t, "reads.fastq.gz", readFastq)
	_, err := Decompressor{Exec: "no-such-decompressor-binary"}.Run(in)
	require.Error(t, err)

	var de *DecompressError
	assert.False(t, errors.As(err, &de))
	assert.FileExists(t, in)
}
