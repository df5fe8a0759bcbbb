package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq/linear"

	"sangerPrep/internal/abif"
)

var (
	ErrNoBasecalls = errors.New("trace has no basecalls")
	ErrNoQualities = errors.New("trace has no quality values")
)

// fastaWidth matches the line width of common FASTA writers.
const fastaWidth = 60

// maxSangerQuality is the highest Phred score Sanger FASTQ can encode ('~').
const maxSangerQuality = 93

// readTrace decodes the basecalls and qualities of an ABIF trace into a
// quality sequence named after the sample, or after the file when the
// trace carries no sample name.
func readTrace(path string) (*linear.QSeq, error) {
	f, err := abif.Open(path)
	if err != nil {
		return nil, err
	}

	calls, err := f.Basecalls()
	if err != nil {
		if errors.Is(err, abif.ErrNoTag) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoBasecalls)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	quals, err := f.Qualities()
	if err != nil {
		if errors.Is(err, abif.ErrNoTag) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoQualities)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(calls) != len(quals) {
		return nil, fmt.Errorf("%s: %w: %d basecalls but %d quality values",
			path, abif.ErrMalformed, len(calls), len(quals))
	}

	id := f.SampleName()
	if id == "" {
		base := filepath.Base(path)
		id = strings.TrimSuffix(base, filepath.Ext(base))
	}

	ql := make([]alphabet.QLetter, len(calls))
	for i := range ql {
		ql[i] = alphabet.QLetter{L: alphabet.Letter(calls[i]), Q: alphabet.Qphred(min(quals[i], maxSangerQuality))}
	}
	return linear.NewQSeq(id, ql, alphabet.DNAredundant, alphabet.Sanger), nil
}

// ConvertAB1ToFastq writes the basecalls and qualities of an ABIF trace file
// to out as a single FASTQ record.
func ConvertAB1ToFastq(in, out string) error {
	s, err := readTrace(in)
	if err != nil {
		return err
	}

	outFile, err := createOutputFile(out)
	if err != nil {
		return err
	}
	if _, err = fastq.NewWriter(outFile).Write(s); err != nil {
		outFile.Close()
		return fmt.Errorf("write %s: %w", out, err)
	}
	return outFile.Close()
}

// ConvertFastqToFasta rewrites a FASTQ file (plain or gzipped) as FASTA and
// returns the number of records written.
func ConvertFastqToFasta(in, out string) (int, error) {
	inFile, err := openInput(in)
	if err != nil {
		return 0, err
	}
	defer inFile.Close()

	outFile, err := createOutputFile(out)
	if err != nil {
		return 0, err
	}
	defer outFile.Close()

	r := fastq.NewReader(inFile, linear.NewQSeq("", nil, alphabet.DNAredundant, alphabet.Sanger))
	w := fasta.NewWriter(outFile, fastaWidth)

	n := 0
	for {
		s, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, fmt.Errorf("read %s: %w", in, err)
		}
		if _, err := w.Write(s); err != nil {
			return n, fmt.Errorf("write %s: %w", out, err)
		}
		n++
	}
	return n, outFile.Close()
}
