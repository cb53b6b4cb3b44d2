// Package textutil provides byte-level text utilities: binary detection and
// sniffing the head of a buffered stream without consuming it.
package textutil

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// BinarySniffLength is the maximum number of bytes scanned for null-byte
// detection. Matches the heuristic used by Git and most editors.
const BinarySniffLength = 8000

// IsBinary returns true if data contains a null byte within the first
// BinarySniffLength bytes. Empty data is not binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	sniff := data
	if len(sniff) > BinarySniffLength {
		sniff = sniff[:BinarySniffLength]
	}

	return bytes.IndexByte(sniff, 0) >= 0
}

// NewSniffReader wraps r in a buffered reader large enough for [Sniff].
func NewSniffReader(r io.Reader) *bufio.Reader {
	return bufio.NewReaderSize(r, BinarySniffLength)
}

// Sniff returns up to BinarySniffLength bytes from the head of br without
// advancing it. A stream shorter than that is returned whole.
// The returned slice is only valid until the next read on br.
func Sniff(br *bufio.Reader) ([]byte, error) {
	head, err := br.Peek(BinarySniffLength)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("sniff: %w", err)
	}

	return head, nil
}
