// Copyright 2023 Tobias Klausmann
// Licensed under the GPLv3, see COPYING for details
//

package png

import (
	"encoding/binary"
	"fmt"
	"slices"
)

const (
	iHDRtype   = "IHDR"
	iHDRlength = 13
	maxDim     = 1<<31 - 1
)

// Allowed bit depths per colour type.
var ct2bd = map[int][]int{
	0: {1, 2, 4, 8, 16},
	2: {8, 16},
	3: {1, 2, 4, 8},
	4: {8, 16},
	6: {8, 16},
}

// ImageHeader holds the fields of the IHDR chunk.
type ImageHeader struct {
	Width       int
	Height      int
	Depth       int
	ColorType   int
	Compression int
	Filter      int
	Interlace   int
}

// ImageHeader decodes the first IHDR chunk. It returns an error wrapping
// ErrChunkNotFound if the file has none.
//
// Inspired by/lifted from https://golang.org/src/image/png/reader.go
func (png *PNG) ImageHeader() (*ImageHeader, error) {
	c := png.ChunkByType(iHDRtype)
	if c == nil {
		return nil, fmt.Errorf("%w: no %s chunk", ErrChunkNotFound, iHDRtype)
	}
	return parseIHDR(c.Data())
}

func parseIHDR(tmp []byte) (*ImageHeader, error) {
	if len(tmp) != iHDRlength {
		return nil, fmt.Errorf("%w: length %d, expected %d",
			ErrInvalidImageHeader, len(tmp), iHDRlength)
	}

	// https://www.w3.org/TR/png/#11IHDR
	// Width:              4 bytes (big endian)
	// Height:             4 bytes (big endian)
	// Bit depth:          1 byte
	// Color type:         1 byte
	// Compression method: 1 byte
	// Filter method:      1 byte
	// Interlace method:   1 byte
	h := &ImageHeader{
		Width:       int(binary.BigEndian.Uint32(tmp[0:4])),
		Height:      int(binary.BigEndian.Uint32(tmp[4:8])),
		Depth:       int(tmp[8]),
		ColorType:   int(tmp[9]),
		Compression: int(tmp[10]),
		Filter:      int(tmp[11]),
		Interlace:   int(tmp[12]),
	}

	// Width and height are PNG four-byte unsigned integers, limited to
	// 0 < n < 2^31. Zero is invalid.
	if h.Width <= 0 || h.Width > maxDim {
		return nil, fmt.Errorf("%w: width expected 0 < w < 2^31, got %d",
			ErrInvalidImageHeader, h.Width)
	}
	if h.Height <= 0 || h.Height > maxDim {
		return nil, fmt.Errorf("%w: height expected 0 < h < 2^31, got %d",
			ErrInvalidImageHeader, h.Height)
	}

	allowed, ok := ct2bd[h.ColorType]
	if !ok {
		return nil, fmt.Errorf("%w: color type expected one of [0,2,3,4,6], got %d",
			ErrInvalidImageHeader, h.ColorType)
	}
	if !slices.Contains(allowed, h.Depth) {
		return nil, fmt.Errorf("%w: color type %d expects depth in %v, got %d",
			ErrInvalidImageHeader, h.ColorType, allowed, h.Depth)
	}

	// Only compression method 0 (deflate) and filter method 0 (adaptive) are
	// defined. Interlace is 0 (none) or 1 (Adam7).
	if h.Compression != 0 {
		return nil, fmt.Errorf("%w: compression method expected 0, got %d",
			ErrInvalidImageHeader, h.Compression)
	}
	if h.Filter != 0 {
		return nil, fmt.Errorf("%w: filter method expected 0, got %d",
			ErrInvalidImageHeader, h.Filter)
	}
	if h.Interlace != 0 && h.Interlace != 1 {
		return nil, fmt.Errorf("%w: interlace method expected 0 or 1, got %d",
			ErrInvalidImageHeader, h.Interlace)
	}
	return h, nil
}

func (h *ImageHeader) String() string {
	return fmt.Sprintf("%dx%d, depth %d, color type %d, interlace %d",
		h.Width, h.Height, h.Depth, h.ColorType, h.Interlace)
}
