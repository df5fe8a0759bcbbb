package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// ambiguousBase is the basecall used when no nucleotide could be assigned.
const ambiguousBase = "N"

// TrimStats counts what the trimmer did over one input file.
type TrimStats struct {
	Records   int64
	Split     int64
	Unchanged int64
	BasesIn   int64
	BasesOut  int64
}

// longestFragment splits sequence on every N and returns the longest piece.
// The earliest piece wins a tie. found is false when sequence has no N.
func longestFragment(sequence string) (fragment string, found bool) {
	if !strings.Contains(sequence, ambiguousBase) {
		return sequence, false
	}
	longest := -1
	for _, frag := range strings.Split(sequence, ambiguousBase) {
		if len(frag) > longest {
			longest = len(frag)
			fragment = frag
		}
	}
	return fragment, true
}

// TrimAmbiguousRuns keeps the longest N-free fragment of every sequence in
// the FASTA file in and appends it to out under the original ID.
//
// minRun is the N run length the caller considers a separator. It is logged
// but the sequence is always split on single N bases.
func TrimAmbiguousRuns(in, out string, minRun int, log Logger) (TrimStats, error) {
	var stats TrimStats

	inFile, err := openInput(in)
	if err != nil {
		return stats, err
	}
	defer inFile.Close()

	outFile, err := appendOutputFile(out)
	if err != nil {
		return stats, err
	}
	defer outFile.Close()

	log.Info(fmt.Sprintf("splitting %s on %s (run length %d)", in, ambiguousBase, minRun))

	r := fasta.NewReader(inFile, linear.NewSeq("", nil, alphabet.DNAredundant))
	w := fasta.NewWriter(outFile, fastaWidth)
	for {
		s, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read %s: %w", in, err)
		}
		rec := s.(*linear.Seq)
		sequence := string(alphabet.LettersToBytes(rec.Seq))

		fragment, found := longestFragment(sequence)
		if found {
			stats.Split++
		} else {
			stats.Unchanged++
			log.Warn("NO NNNNs found in " + rec.ID)
		}

		trimmed := linear.NewSeq(rec.ID, alphabet.BytesToLetters([]byte(fragment)), alphabet.DNAredundant)
		log.Info(fmt.Sprintf("length of longest sequence used = %d", len(fragment)))
		log.Info(fmt.Sprintf("sequence = %s\n%s", rec.ID, fragment))

		if _, err := w.Write(trimmed); err != nil {
			return stats, fmt.Errorf("write %s: %w", out, err)
		}
		stats.Records++
		stats.BasesIn += int64(len(sequence))
		stats.BasesOut += int64(len(fragment))
	}
	return stats, outFile.Close()
}

// Comma formats value with thousands separators.
func Comma(value int64) string {
	str := strconv.FormatInt(value, 10)
	result := ""
	count := 0
	for i := len(str) - 1; i >= 0; i-- {
		if count > 0 && count%3 == 0 {
			result = "," + result
		}
		result = string(str[i]) + result
		count++
	}
	return result
}
