package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// DefaultChunkSize is the read buffer used when none is configured
const DefaultChunkSize = 32 * 1024

// ReadBody reads a response body into memory.
//
// When declared is positive the body is consumed in chunks of chunkSize and
// onPercent is called each time the floored percentage of declared bytes
// changes. Chunks are kept in arrival order and merged once the stream ends.
// Without a declared length the body is read in one pass and onPercent is
// never called.
func ReadBody(r io.Reader, declared int64, chunkSize int, onPercent func(percent int)) ([]byte, error) {
	if declared <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read body: %w", err)
		}
		return data, nil
	}

	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var (
		chunks  [][]byte
		read    int64
		percent = -1
	)

	for {
		buf := make([]byte, chunkSize)
		n, err := r.Read(buf)
		if n > 0 {
			chunks = append(chunks, buf[:n])
			read += int64(n)

			if p := percentOf(read, declared); p != percent {
				percent = p
				if onPercent != nil {
					onPercent(p)
				}
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read body: %w", err)
		}
	}

	return bytes.Join(chunks, nil), nil
}

// percentOf floors read/declared to an integer percentage, capped at 100
func percentOf(read, declared int64) int {
	p := read * 100 / declared
	if p > 100 {
		p = 100
	}
	return int(p)
}
