package container

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// Chunk is one located metadata chunk: its four-character ID and raw payload.
type Chunk struct {
	ID   string
	Data []byte
}

// Scan walks the chunks of a RIFF/WAVE stream and collects the payloads of
// the chunks the keep function selects. Other chunks (fmt, data, ...) are
// drained without buffering. A truncated trailing chunk ends the walk
// silently; only a malformed container header is a hard error.
func Scan(r io.Reader, keep func(id string) bool) ([]Chunk, error) {
	br := bufio.NewReader(r)
	p := riff.New(br)
	if err := p.ParseHeaders(); err != nil {
		return nil, fmt.Errorf("parse RIFF header: %w", err)
	}
	if p.Format != riff.WavFormatID {
		return nil, fmt.Errorf("unsupported RIFF form %q, want WAVE", string(p.Format[:]))
	}

	var found []Chunk
	for {
		c, err := p.NextChunk()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return nil, fmt.Errorf("walk chunks: %w", err)
		}
		id := string(c.ID[:])
		if keep(id) {
			buf := make([]byte, c.Size)
			n, err := io.ReadFull(c, buf)
			if err != nil {
				// Chunk declared more bytes than the stream holds.
				found = append(found, Chunk{ID: id, Data: buf[:n]})
				break
			}
			found = append(found, Chunk{ID: id, Data: buf})
		} else {
			if _, err := io.CopyN(io.Discard, c, int64(c.Size)); err != nil {
				break
			}
		}
		// Chunks are word aligned; the pad byte is not part of Size.
		if c.Size%2 == 1 {
			if _, err := br.Discard(1); err != nil {
				break
			}
		}
	}
	return found, nil
}
