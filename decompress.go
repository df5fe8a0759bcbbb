package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"
)

var (
	ErrNotGzip      = errors.New("not a .gz file")
	ErrOutputExists = errors.New("output file already exists")
)

// Decompressor runs an external decompression utility on a file in place.
// An empty Exec decompresses gzip files in-process instead.
type Decompressor struct {
	Exec string

	// When true, the utility's stdout and stderr are mapped to the current
	// process' stdout and stderr.
	Verbose bool
}

// Gunzip is the default configuration used by Decompress.
var Gunzip = Decompressor{Exec: "gunzip"}

// DecompressError reports a decompression utility that exited non-zero.
type DecompressError struct {
	Path     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *DecompressError) Error() string {
	msg := fmt.Sprintf("decompress %s: exit status %d", e.Path, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *DecompressError) Unwrap() error { return e.Err }

// Decompress decompresses path with Gunzip and returns the path of the
// decompressed file.
func Decompress(path string) (string, error) {
	return Gunzip.Run(path)
}

// Run decompresses path and returns it with its compression suffix removed.
// The compressed input is replaced by the decompressed file.
func (d Decompressor) Run(path string) (string, error) {
	out := strings.TrimSuffix(path, filepath.Ext(path))
	if d.Exec == "" {
		if err := decompressGzip(path, out); err != nil {
			return "", err
		}
		return out, nil
	}

	var stderr bytes.Buffer
	c := exec.Command(d.Exec, path)
	c.Stderr = &stderr
	if d.Verbose {
		fmt.Fprintf(os.Stderr, "%s\n", c)
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
	}
	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &DecompressError{
				Path:     path,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
				Err:      err,
			}
		}
		return "", fmt.Errorf("decompress %s: %w", path, err)
	}
	return out, nil
}

func decompressGzip(path, out string) error {
	if !strings.EqualFold(filepath.Ext(path), ".gz") {
		return fmt.Errorf("%s: %w", path, ErrNotGzip)
	}

	inFile, err := os.Open(path)
	if err != nil {
		return err
	}
	defer inFile.Close()

	info, err := inFile.Stat()
	if err != nil {
		return err
	}

	gr, err := pgzip.NewReader(inFile)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer gr.Close()

	outFile, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", out, ErrOutputExists)
		}
		return err
	}

	if _, err = io.Copy(outFile, gr); err == nil {
		err = outFile.Chmod(info.Mode().Perm())
	}
	if cerr := outFile.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(out)
		return fmt.Errorf("decompress %s: %w", path, err)
	}

	inFile.Close()
	return os.Remove(path)
}
