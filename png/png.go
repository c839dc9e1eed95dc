// Copyright 2023 Tobias Klausmann
// Licensed under the GPLv3, see COPYING for details
//

// Package png reads, edits and writes PNG files at the chunk level. It checks
// the file signature and every chunk's CRC32, but never looks at pixel data.
package png

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// From https://www.w3.org/TR/png/#5PNG-file-signature:
// ```
// The first eight bytes of a PNG datastream always contain the following
// (decimal) values:
//
// 137 80 78 71 13 10 26 10
//
// which are (in hexadecimal):
//
// 89 50 4E 47 0D 0A 1A 0A
// ```
const Signature = "\x89\x50\x4E\x47\x0D\x0A\x1A\x0A"

// StandardHeader is Signature as a byte array.
var StandardHeader = [8]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// PNG is a signature followed by an ordered list of chunks. The order of
// Chunks is the file order and is kept by AppendChunk and RemoveChunk.
//
// No check is made that IHDR, IDAT or IEND are present or correctly placed.
type PNG struct {
	chunks []*Chunk
}

// New returns a PNG holding the given chunks.
func New(chunks ...*Chunk) *PNG {
	return &PNG{chunks: append([]*Chunk(nil), chunks...)}
}

// Parse decodes a complete PNG file. The first failing chunk aborts the parse.
func Parse(b []byte) (*PNG, error) {
	if len(b) < len(Signature) || string(b[:len(Signature)]) != Signature {
		n := min(len(b), len(Signature))
		return nil, fmt.Errorf("%w: got %x - expected %x",
			ErrInvalidSignature, b[:n], Signature)
	}

	png := &PNG{}
	for off := len(Signature); off < len(b); {
		c, err := ParseChunk(b[off:])
		if err != nil {
			return nil, fmt.Errorf("chunk %d at offset %d: %w",
				len(png.chunks), off, err)
		}
		png.chunks = append(png.chunks, c)
		off += c.EncodedLen()
	}
	return png, nil
}

// Load reads r to EOF and parses the result.
func Load(r io.Reader) (*PNG, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// AppendChunk adds c after the last chunk. Several chunks may share a type.
func (png *PNG) AppendChunk(c *Chunk) {
	png.chunks = append(png.chunks, c)
}

// RemoveChunk removes the first chunk of the given type and returns it.
func (png *PNG) RemoveChunk(typ string) (*Chunk, error) {
	i := png.index(typ)
	if i < 0 {
		return nil, fmt.Errorf("%w: no chunk of type %q", ErrChunkNotFound, typ)
	}
	c := png.chunks[i]
	png.chunks = append(png.chunks[:i], png.chunks[i+1:]...)
	return c, nil
}

// ChunkByType returns the first chunk of the given type, or nil if there is
// none.
func (png *PNG) ChunkByType(typ string) *Chunk {
	if i := png.index(typ); i >= 0 {
		return png.chunks[i]
	}
	return nil
}

func (png *PNG) index(typ string) int {
	for i, c := range png.chunks {
		if c.Type().String() == typ {
			return i
		}
	}
	return -1
}

// Chunks returns the chunks in file order. The slice must not be modified.
func (png *PNG) Chunks() []*Chunk {
	return png.chunks
}

// Header returns the file signature.
func (png *PNG) Header() [8]byte {
	return StandardHeader
}

// TextChunks returns the data of all tEXt chunks, in file order.
func (png *PNG) TextChunks() []string {
	var chunks []string
	for _, c := range png.chunks {
		if c.Type().String() == "tEXt" {
			chunks = append(chunks, string(c.Data()))
		}
	}
	return chunks
}

// Bytes serializes the signature and all chunks.
func (png *PNG) Bytes() []byte {
	size := len(Signature)
	for _, c := range png.chunks {
		size += c.EncodedLen()
	}
	buf := make([]byte, 0, size)
	buf = append(buf, Signature...)
	for _, c := range png.chunks {
		buf = c.appendTo(buf)
	}
	return buf
}

// WriteTo writes the serialized file to w.
func (png *PNG) WriteTo(w io.Writer) (int64, error) {
	return bytes.NewReader(png.Bytes()).WriteTo(w)
}

func (png *PNG) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Signature:%v\n", png.Header())
	for _, c := range png.chunks {
		b.WriteString(c.String())
		b.WriteString("\n")
	}
	return b.String()
}
