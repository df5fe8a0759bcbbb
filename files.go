package main

import (
	"bufio"
	"io"
	"os"

	"github.com/klauspost/pgzip"
)

// gzipReadCloser closes the gzip stream and the file under it.
type gzipReadCloser struct {
	*pgzip.Reader
	f *os.File
}

func (g *gzipReadCloser) Close() error {
	err := g.Reader.Close()
	if cerr := g.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// openInput opens a sequence file, decompressing it on the fly when it
// starts with the gzip magic bytes.
func openInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(f)
	sig, _ := br.Peek(2)
	if len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b {
		gr, err := pgzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &gzipReadCloser{Reader: gr, f: f}, nil
	}
	return struct {
		io.Reader
		io.Closer
	}{br, f}, nil
}

func createOutputFile(path string) (*os.File, error) {
	return os.Create(path)
}

// appendOutputFile opens path for appending, creating it if needed.
func appendOutputFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}
