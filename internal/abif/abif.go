// Package abif reads Applied Biosystems ABIF trace files (.ab1, .abi, .fsa).
//
// An ABIF file is a big-endian container: a 6 byte header ("ABIF" plus a
// version number), a root directory entry pointing at the directory, and a
// list of 28 byte directory entries. Each entry is keyed by a four character
// tag name and a tag number, e.g. PBAS2 (basecalls) or DATA9 (raw channel).
package abif

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strconv"
)

var (
	ErrNotABIF   = errors.New("abif: not an ABIF file")
	ErrMalformed = errors.New("abif: malformed file")
	ErrNoTag     = errors.New("abif: tag not found")
	ErrType      = errors.New("abif: unexpected element type")
)

const (
	magic      = "ABIF"
	headerSize = 34
	entrySize  = 28
)

// Element types of the ABIF type table.
const (
	TypeByte    int16 = 1
	TypeChar    int16 = 2
	TypeWord    int16 = 3
	TypeShort   int16 = 4
	TypeLong    int16 = 5
	TypeFloat   int16 = 7
	TypeDouble  int16 = 8
	TypeDate    int16 = 10
	TypeTime    int16 = 11
	TypePString int16 = 18
	TypeCString int16 = 19
	TypeDir     int16 = 1023
)

// Entry is one directory entry with its data resolved.
type Entry struct {
	Name        string
	Number      int32
	ElementType int16
	ElementSize int16
	NumElements int32
	Data        []byte
}

// Key returns the lookup key of the entry, e.g. "DATA9".
func (e *Entry) Key() string {
	return e.Name + strconv.Itoa(int(e.Number))
}

// File is a decoded ABIF file.
type File struct {
	Version uint16
	Entries []*Entry
	index   map[string]*Entry
}

// Open reads and decodes the ABIF file at path.
func Open(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Decode parses an in-memory ABIF file.
func Decode(b []byte) (*File, error) {
	if len(b) < headerSize || string(b[:4]) != magic {
		return nil, ErrNotABIF
	}
	f := &File{
		Version: binary.BigEndian.Uint16(b[4:6]),
		index:   make(map[string]*Entry),
	}

	root := b[6:headerSize]
	n := int(int32(binary.BigEndian.Uint32(root[12:16])))
	off := int(int32(binary.BigEndian.Uint32(root[20:24])))
	if n < 0 || off < 0 || off+n*entrySize > len(b) {
		return nil, fmt.Errorf("%w: directory of %d entries at offset %d exceeds %d bytes",
			ErrMalformed, n, off, len(b))
	}

	for i := 0; i < n; i++ {
		e, err := decodeEntry(b, b[off+i*entrySize:off+(i+1)*entrySize])
		if err != nil {
			return nil, err
		}
		f.Entries = append(f.Entries, e)
		f.index[e.Key()] = e
	}
	return f, nil
}

func decodeEntry(b, raw []byte) (*Entry, error) {
	e := &Entry{
		Name:        string(raw[0:4]),
		Number:      int32(binary.BigEndian.Uint32(raw[4:8])),
		ElementType: int16(binary.BigEndian.Uint16(raw[8:10])),
		ElementSize: int16(binary.BigEndian.Uint16(raw[10:12])),
		NumElements: int32(binary.BigEndian.Uint32(raw[12:16])),
	}
	size := int(int32(binary.BigEndian.Uint32(raw[16:20])))
	if size < 0 {
		return nil, fmt.Errorf("%w: %s has negative data size", ErrMalformed, e.Key())
	}
	// Data of four bytes or less lives in the offset field itself.
	if size <= 4 {
		e.Data = append([]byte(nil), raw[20:20+size]...)
		return e, nil
	}
	off := int(int32(binary.BigEndian.Uint32(raw[20:24])))
	if off < 0 || off+size > len(b) {
		return nil, fmt.Errorf("%w: %s data [%d:%d] exceeds %d bytes",
			ErrMalformed, e.Key(), off, off+size, len(b))
	}
	e.Data = b[off : off+size]
	return e, nil
}

// Entry returns the entry stored under key.
func (f *File) Entry(key string) (*Entry, error) {
	e, ok := f.index[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoTag, key)
	}
	return e, nil
}

// Has reports whether key is present.
func (f *File) Has(key string) bool {
	_, ok := f.index[key]
	return ok
}

// Bytes returns the raw data of a byte or char entry.
func (e *Entry) Bytes() ([]byte, error) {
	switch e.ElementType {
	case TypeByte, TypeChar:
		return e.Data, nil
	}
	return nil, fmt.Errorf("%w: %s has type %d, want byte or char", ErrType, e.Key(), e.ElementType)
}

// Text decodes a char, pString or cString entry.
func (e *Entry) Text() (string, error) {
	switch e.ElementType {
	case TypeChar:
		return string(e.Data), nil
	case TypePString:
		if len(e.Data) == 0 {
			return "", nil
		}
		n := int(e.Data[0])
		if n > len(e.Data)-1 {
			return "", fmt.Errorf("%w: %s pString length %d exceeds data", ErrMalformed, e.Key(), n)
		}
		return string(e.Data[1 : 1+n]), nil
	case TypeCString:
		if i := bytes.IndexByte(e.Data, 0); i >= 0 {
			return string(e.Data[:i]), nil
		}
		return string(e.Data), nil
	}
	return "", fmt.Errorf("%w: %s has type %d, want a string type", ErrType, e.Key(), e.ElementType)
}

// Shorts decodes a short (int16) array entry.
func (e *Entry) Shorts() ([]int16, error) {
	if e.ElementType != TypeShort {
		return nil, fmt.Errorf("%w: %s has type %d, want short", ErrType, e.Key(), e.ElementType)
	}
	if len(e.Data) != int(e.NumElements)*2 {
		return nil, fmt.Errorf("%w: %s holds %d bytes for %d shorts",
			ErrMalformed, e.Key(), len(e.Data), e.NumElements)
	}
	out := make([]int16, e.NumElements)
	for i := range out {
		out[i] = int16(binary.BigEndian.Uint16(e.Data[2*i:]))
	}
	return out, nil
}
