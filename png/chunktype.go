// Copyright 2023 Tobias Klausmann
// Licensed under the GPLv3, see COPYING for details
//

package png

import "fmt"

// From https://www.w3.org/TR/png/#5Chunk-naming-conventions:
// ```
// Four bits of the chunk type, the property bits, namely bit 5 (value 32) of
// each byte, are used to convey chunk properties.
// ```
const propertyBit = 0x20

// ChunkType is the four byte type tag of a chunk, e.g. IHDR or tEXt.
//
// Values built with ParseChunkType are guaranteed to be all ASCII letters.
// ChunkTypeFromBytes performs no checks at all; it exists so that tags read
// from a file survive a parse/serialize round trip unchanged.
type ChunkType [4]byte

// ChunkTypeFromBytes wraps raw bytes without validating them.
func ChunkTypeFromBytes(b [4]byte) ChunkType {
	return ChunkType(b)
}

// ParseChunkType builds a ChunkType from user input. The string must be
// exactly four ASCII letters.
func ParseChunkType(s string) (ChunkType, error) {
	var t ChunkType
	if len(s) != len(t) {
		return t, fmt.Errorf("%w: %q must be 4 bytes long, got %d",
			ErrInvalidFormat, s, len(s))
	}
	for i := 0; i < len(t); i++ {
		if !isLetter(s[i]) {
			return t, fmt.Errorf("%w: %q has non-letter byte %#02x at %d",
				ErrInvalidFormat, s, s[i], i)
		}
		t[i] = s[i]
	}
	return t, nil
}

// Bytes returns the raw tag.
func (t ChunkType) Bytes() [4]byte {
	return t
}

// IsCritical reports whether a decoder must understand the chunk to display
// the image (ancillary bit unset).
func (t ChunkType) IsCritical() bool {
	return t[0]&propertyBit == 0
}

// IsPublic reports whether the type is part of the PNG standard or a
// registered public type (private bit unset).
func (t ChunkType) IsPublic() bool {
	return t[1]&propertyBit == 0
}

// IsReservedBitValid reports whether the reserved bit is unset, which is
// required for all chunk types by the current PNG standard.
func (t ChunkType) IsReservedBitValid() bool {
	return t[2]&propertyBit == 0
}

// IsSafeToCopy reports whether editors that do not recognize the chunk may
// copy it into a modified file. Note the inverted sense: the bit is set.
func (t ChunkType) IsSafeToCopy() bool {
	return t[3]&propertyBit != 0
}

// IsValid reports whether the type conforms to the current standard.
func (t ChunkType) IsValid() bool {
	return t.IsReservedBitValid()
}

func (t ChunkType) String() string {
	return string(t[:])
}

func isLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
