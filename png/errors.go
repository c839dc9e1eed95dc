// Copyright 2023 Tobias Klausmann
// Licensed under the GPLv3, see COPYING for details
//

package png

import (
	"errors"
	"fmt"
)

// Every error returned by this package wraps exactly one of these, so callers
// can tell failures apart with errors.Is.
var (
	ErrInvalidFormat      = errors.New("invalid chunk type")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrTruncated          = errors.New("truncated chunk")
	ErrInvalidSignature   = errors.New("invalid PNG signature")
	ErrChunkNotFound      = errors.New("chunk not found")
	ErrInvalidImageHeader = errors.New("invalid IHDR")
)

// ChecksumError is returned by ParseChunk if the CRC32 stored in the chunk
// does not match the one computed over its type and data.
type ChecksumError struct {
	Type     ChunkType
	Stored   uint32
	Computed uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%s: chunk %q stores %08x, computed %08x",
		ErrChecksumMismatch, e.Type, e.Stored, e.Computed)
}

// Is makes errors.Is(err, ErrChecksumMismatch) hold for a *ChecksumError.
func (e *ChecksumError) Is(target error) bool {
	return target == ErrChecksumMismatch
}
