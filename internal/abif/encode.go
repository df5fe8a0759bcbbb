package abif

import (
	"encoding/binary"
	"io"
)

// NewChars returns a char entry holding s.
func NewChars(name string, number int32, s []byte) *Entry {
	return &Entry{Name: name, Number: number, ElementType: TypeChar, ElementSize: 1,
		NumElements: int32(len(s)), Data: s}
}

// NewPString returns a pString entry holding s (at most 255 bytes).
func NewPString(name string, number int32, s string) *Entry {
	d := append([]byte{byte(len(s))}, s...)
	return &Entry{Name: name, Number: number, ElementType: TypePString, ElementSize: 1,
		NumElements: int32(len(d)), Data: d}
}

// NewShorts returns a short array entry.
func NewShorts(name string, number int32, v []int16) *Entry {
	d := make([]byte, 2*len(v))
	for i, x := range v {
		binary.BigEndian.PutUint16(d[2*i:], uint16(x))
	}
	return &Entry{Name: name, Number: number, ElementType: TypeShort, ElementSize: 2,
		NumElements: int32(len(v)), Data: d}
}

// Encode writes entries as an ABIF file. Data blocks follow the header and
// the directory comes last, which is how instrument software lays files out.
func Encode(w io.Writer, version uint16, entries []*Entry) error {
	var data []byte
	offsets := make([]int32, len(entries))
	for i, e := range entries {
		if len(e.Data) > 4 {
			offsets[i] = int32(headerSize + len(data))
			data = append(data, e.Data...)
		}
	}
	dirOff := int32(headerSize + len(data))

	buf := make([]byte, 0, int(dirOff)+len(entries)*entrySize)
	buf = append(buf, magic...)
	buf = binary.BigEndian.AppendUint16(buf, version)
	buf = appendEntry(buf, &Entry{
		Name: "tdir", Number: 1, ElementType: TypeDir, ElementSize: entrySize,
		NumElements: int32(len(entries)),
	}, int32(len(entries)*entrySize), dirOff)
	buf = append(buf, data...)
	for i, e := range entries {
		buf = appendEntry(buf, e, int32(len(e.Data)), offsets[i])
	}
	_, err := w.Write(buf)
	return err
}

func appendEntry(buf []byte, e *Entry, size, off int32) []byte {
	name := [4]byte{' ', ' ', ' ', ' '}
	copy(name[:], e.Name)
	buf = append(buf, name[:]...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(e.Number))
	buf = binary.BigEndian.AppendUint16(buf, uint16(e.ElementType))
	buf = binary.BigEndian.AppendUint16(buf, uint16(e.ElementSize))
	buf = binary.BigEndian.AppendUint32(buf, uint32(e.NumElements))
	buf = binary.BigEndian.AppendUint32(buf, uint32(size))
	if size <= 4 {
		var inline [4]byte
		copy(inline[:], e.Data)
		buf = append(buf, inline[:]...)
	} else {
		buf = binary.BigEndian.AppendUint32(buf, uint32(off))
	}
	// data handle, unused
	return binary.BigEndian.AppendUint32(buf, 0)
}
