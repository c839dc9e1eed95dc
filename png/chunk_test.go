// Copyright 2023 Tobias Klausmann
// Licensed under the GPLv3, see COPYING for details
//

package png

import (
	"encoding/binary"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const (
	testMessage = "This is where your secret message will be!"
	testCRC     = 2882656334
)

func rawChunk(length uint32, typ, data string, crc uint32) []byte {
	var b []byte
	b = binary.BigEndian.AppendUint32(b, length)
	b = append(b, typ...)
	b = append(b, data...)
	return binary.BigEndian.AppendUint32(b, crc)
}

func mustChunkType(s string) ChunkType {
	ct, err := ParseChunkType(s)
	if err != nil {
		panic(err)
	}
	return ct
}

func TestChunk(t *testing.T) {
	t.Parallel()

	Convey("Chunk", t, func() {
		Convey("new", func() {
			c := NewChunk(mustChunkType("RuSt"), []byte(testMessage))
			So(c.Length(), ShouldEqual, 42)
			So(c.CRC(), ShouldEqual, testCRC)
			So(c.Type().String(), ShouldEqual, "RuSt")
			So(c.DataString(), ShouldEqual, testMessage)
			So(c.EncodedLen(), ShouldEqual, 54)
		})

		Convey("owns its data", func() {
			data := []byte("abc")
			c := NewChunk(mustChunkType("RuSt"), data)
			data[0] = 'x'
			So(c.DataString(), ShouldEqual, "abc")
		})

		Convey("empty data", func() {
			c := NewChunk(mustChunkType("IEND"), nil)
			So(c.Length(), ShouldEqual, 0)
			So(c.CRC(), ShouldEqual, 0xAE426082)
			So(c.Bytes(), ShouldResemble, []byte{
				0, 0, 0, 0, 'I', 'E', 'N', 'D', 0xAE, 0x42, 0x60, 0x82})
		})

		Convey("parse", func() {
			Convey("good", func() {
				b := rawChunk(42, "RuSt", testMessage, testCRC)
				c, err := ParseChunk(b)
				So(err, ShouldBeNil)
				So(c.Length(), ShouldEqual, 42)
				So(c.Type().String(), ShouldEqual, "RuSt")
				So(c.DataString(), ShouldEqual, testMessage)
				So(c.CRC(), ShouldEqual, testCRC)
				So(c.Bytes(), ShouldResemble, b)
			})

			Convey("trailing bytes are ignored", func() {
				b := append(rawChunk(42, "RuSt", testMessage, testCRC), 1, 2, 3)
				c, err := ParseChunk(b)
				So(err, ShouldBeNil)
				So(c.EncodedLen(), ShouldEqual, len(b)-3)
			})

			Convey("bad crc", func() {
				_, err := ParseChunk(rawChunk(42, "RuSt", testMessage, testCRC-1))
				So(errors.Is(err, ErrChecksumMismatch), ShouldBeTrue)

				var ce *ChecksumError
				So(errors.As(err, &ce), ShouldBeTrue)
				So(ce.Stored, ShouldEqual, testCRC-1)
				So(ce.Computed, ShouldEqual, testCRC)
				So(ce.Type.String(), ShouldEqual, "RuSt")
			})

			Convey("truncated", func() {
				b := rawChunk(42, "RuSt", testMessage, testCRC)
				for _, n := range []int{0, 3, 11, 12, len(b) - 1} {
					_, err := ParseChunk(b[:n])
					So(errors.Is(err, ErrTruncated), ShouldBeTrue)
				}
			})

			Convey("huge length", func() {
				_, err := ParseChunk(rawChunk(0xFFFFFFFF, "RuSt", "", 0))
				So(errors.Is(err, ErrTruncated), ShouldBeTrue)
			})
		})

		Convey("round trip", func() {
			payloads := [][]byte{nil, {0}, []byte(testMessage), make([]byte, 4096)}
			for _, p := range payloads {
				c := NewChunk(mustChunkType("teXt"), p)
				back, err := ParseChunk(c.Bytes())
				So(err, ShouldBeNil)
				So(back.Equal(c), ShouldBeTrue)
				So(back.Length(), ShouldEqual, c.Length())
				So(back.CRC(), ShouldEqual, c.CRC())
			}
		})

		Convey("every flipped bit in type or data is detected", func() {
			b := NewChunk(mustChunkType("RuSt"), []byte("hidden")).Bytes()
			for i := lengthSize; i < len(b)-crcSize; i++ {
				for bit := 0; bit < 8; bit++ {
					bad := append([]byte(nil), b...)
					bad[i] ^= 1 << bit
					_, err := ParseChunk(bad)
					So(errors.Is(err, ErrChecksumMismatch), ShouldBeTrue)
				}
			}
		})

		Convey("lossy data string", func() {
			c := NewChunk(mustChunkType("RuSt"), []byte{'o', 'k', 0xff, '!'})
			So(c.DataString(), ShouldEqual, "ok�!")
		})

		Convey("display", func() {
			c := NewChunk(mustChunkType("RuSt"), []byte(testMessage))
			So(c.String(), ShouldEqual,
				"Length:42\nType:RuSt\nData:"+testMessage+"\nCRC:2882656334")
		})

		Convey("equal", func() {
			a := NewChunk(mustChunkType("RuSt"), []byte("a"))
			So(a.Equal(NewChunk(mustChunkType("RuSt"), []byte("a"))), ShouldBeTrue)
			So(a.Equal(NewChunk(mustChunkType("RuSt"), []byte("b"))), ShouldBeFalse)
			So(a.Equal(NewChunk(mustChunkType("RUSt"), []byte("a"))), ShouldBeFalse)
			So(a.Equal(nil), ShouldBeFalse)
		})
	})
}
