package abif

import (
	"fmt"
)

// ChannelKeys are the raw fluorescence channels of a four dye trace, in
// dye order.
var ChannelKeys = []string{"DATA9", "DATA10", "DATA11", "DATA12"}

// first returns the first entry present among keys.
func (f *File) first(keys ...string) (*Entry, error) {
	for _, k := range keys {
		if e, ok := f.index[k]; ok {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrNoTag, keys)
}

// Basecalls returns the edited basecalls (PBAS2), or the original calls
// (PBAS1) when no edited set is stored.
func (f *File) Basecalls() (string, error) {
	e, err := f.first("PBAS2", "PBAS1")
	if err != nil {
		return "", err
	}
	b, err := e.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Qualities returns the per-base Phred scores (PCON2, falling back to PCON1).
func (f *File) Qualities() ([]byte, error) {
	e, err := f.first("PCON2", "PCON1")
	if err != nil {
		return nil, err
	}
	return e.Bytes()
}

// SampleName returns SMPL1, or "" when the file carries none.
func (f *File) SampleName() string {
	e, ok := f.index["SMPL1"]
	if !ok {
		return ""
	}
	s, err := e.Text()
	if err != nil {
		return ""
	}
	return s
}

// Channels returns the named short channels. Every key must be present.
func (f *File) Channels(keys ...string) (map[string][]int16, error) {
	out := make(map[string][]int16, len(keys))
	for _, k := range keys {
		e, err := f.Entry(k)
		if err != nil {
			return nil, err
		}
		if out[k], err = e.Shorts(); err != nil {
			return nil, err
		}
	}
	return out, nil
}
