// Copyright 2023 Tobias Klausmann
// Licensed under the GPLv3, see COPYING for details
//

package png

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"golang.org/x/text/encoding/unicode"
)

// From https://www.w3.org/TR/png/#5Chunk-layout:
// ```
// Length     4 bytes (big endian)
// Chunk type 4 bytes
// Chunk data Length bytes
// CRC        4 bytes (big endian)
//
// The CRC is calculated on the preceding bytes in the chunk, including the
// chunk type field and chunk data fields, but not including the length
// field.
// ```
const (
	lengthSize = 4
	typeSize   = 4
	crcSize    = 4

	// chunkOverhead is the number of bytes a chunk takes besides its data.
	chunkOverhead = lengthSize + typeSize + crcSize
)

// Chunk is a PNG file chunk. Its length and CRC32 checksum are derived from
// the type and data when the chunk is built and cannot be set on their own.
type Chunk struct {
	typ  ChunkType
	data []byte
	crc  uint32
}

// NewChunk builds a chunk of the given type holding a copy of data.
func NewChunk(t ChunkType, data []byte) *Chunk {
	c := &Chunk{
		typ:  t,
		data: append([]byte(nil), data...),
	}
	c.crc = checksum(c.typ, c.data)
	return c
}

// ParseChunk reads one chunk from the front of b. Bytes after the chunk are
// ignored; use EncodedLen on the result to find where the next one starts.
func ParseChunk(b []byte) (*Chunk, error) {
	if len(b) < chunkOverhead {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d",
			ErrTruncated, chunkOverhead, len(b))
	}
	length := binary.BigEndian.Uint32(b[0:lengthSize])

	// Compare as uint64 so a bogus length near 2^32 can't overflow.
	if uint64(len(b)) < uint64(chunkOverhead)+uint64(length) {
		return nil, fmt.Errorf("%w: length field says %d data bytes, only %d available",
			ErrTruncated, length, len(b)-chunkOverhead)
	}

	var raw [typeSize]byte
	copy(raw[:], b[lengthSize:lengthSize+typeSize])
	t := ChunkTypeFromBytes(raw)

	dataStart := lengthSize + typeSize
	dataEnd := dataStart + int(length)
	c := NewChunk(t, b[dataStart:dataEnd])

	stored := binary.BigEndian.Uint32(b[dataEnd : dataEnd+crcSize])
	if stored != c.crc {
		return nil, &ChecksumError{Type: t, Stored: stored, Computed: c.crc}
	}
	return c, nil
}

// Length returns the number of data bytes.
func (c *Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// Type returns the chunk type.
func (c *Chunk) Type() ChunkType {
	return c.typ
}

// CRC returns the CRC32 over type and data.
func (c *Chunk) CRC() uint32 {
	return c.crc
}

// Data returns the chunk payload. The returned slice must not be modified.
func (c *Chunk) Data() []byte {
	return c.data
}

// DataString decodes the payload as UTF-8, replacing invalid sequences with
// U+FFFD. Meant for display only.
func (c *Chunk) DataString() string {
	s, err := unicode.UTF8.NewDecoder().Bytes(c.data)
	if err != nil {
		return string(bytes.ToValidUTF8(c.data, []byte("�")))
	}
	return string(s)
}

// EncodedLen is the size of the chunk as returned by Bytes.
func (c *Chunk) EncodedLen() int {
	return chunkOverhead + len(c.data)
}

// Bytes serializes the chunk in file order.
func (c *Chunk) Bytes() []byte {
	return c.appendTo(make([]byte, 0, c.EncodedLen()))
}

func (c *Chunk) appendTo(buf []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, c.Length())
	buf = append(buf, c.typ[:]...)
	buf = append(buf, c.data...)
	return binary.BigEndian.AppendUint32(buf, c.crc)
}

// Equal reports whether both chunks have the same type and data, and hence
// the same length and checksum.
func (c *Chunk) Equal(o *Chunk) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.typ == o.typ && c.crc == o.crc && bytes.Equal(c.data, o.data)
}

func (c *Chunk) String() string {
	return fmt.Sprintf("Length:%d\nType:%s\nData:%s\nCRC:%d",
		c.Length(), c.typ, c.DataString(), c.crc)
}

func checksum(t ChunkType, data []byte) uint32 {
	h := crc32.NewIEEE()
	h.Write(t[:])
	h.Write(data)
	return h.Sum32()
}
