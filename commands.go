// Copyright 2023 Tobias Klausmann
// Licensed under the GPLv3, see COPYING for details
//

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"

	"github.com/klausman/pngme/png"
)

type app struct {
	out io.Writer
	log Logger
}

// encode appends a chunk holding message to file, creating file with just
// the PNG signature if it does not exist yet. The existing contents are not
// parsed. With output set, file is parsed instead and the result is written
// to output, leaving file untouched.
func (a *app) encode(filename, chunkType, message, output string) error {
	ct, err := png.ParseChunkType(chunkType)
	if err != nil {
		return err
	}
	chunk := png.NewChunk(ct, []byte(message))
	a.log.Log("built %s chunk: %d bytes, crc %d", ct, chunk.Length(), chunk.CRC())

	if output != "" {
		img, err := readPNG(filename)
		if err != nil {
			return err
		}
		img.AppendChunk(chunk)
		if err := os.WriteFile(output, img.Bytes(), 0644); err != nil {
			return err
		}
		a.log.Log("wrote %d chunks to %s", len(img.Chunks()), output)
	} else if err := appendChunk(filename, chunk); err != nil {
		return err
	}

	fmt.Fprintln(a.out, successStyle.Render("Message encoded successfully!"))
	return nil
}

func appendChunk(filename string, chunk *png.Chunk) error {
	_, err := os.Stat(filename)
	addHeader := errors.Is(err, fs.ErrNotExist)

	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	if addHeader {
		if _, err := io.WriteString(file, png.Signature); err != nil {
			file.Close()
			return err
		}
	}
	if _, err := file.Write(chunk.Bytes()); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (a *app) decode(filename, chunkType string) error {
	img, err := readPNG(filename)
	if err != nil {
		return err
	}
	chunk := img.ChunkByType(chunkType)
	if chunk == nil {
		return fmt.Errorf("%s: %w: no chunk of type %q", filename, png.ErrChunkNotFound, chunkType)
	}
	fmt.Fprintln(a.out, chunk)
	return nil
}

// remove drops the first chunk of the given type and rewrites file with the
// remaining ones.
func (a *app) remove(filename, chunkType string) error {
	img, err := readPNG(filename)
	if err != nil {
		return err
	}
	chunk, err := img.RemoveChunk(chunkType)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	if err := os.WriteFile(filename, img.Bytes(), 0644); err != nil {
		return err
	}
	a.log.Log("%s: %d chunks left", filename, len(img.Chunks()))
	fmt.Fprintln(a.out, chunk)
	return nil
}

func (a *app) print(filename string) error {
	img, err := readPNG(filename)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, titleStyle.Render(filename))
	hdr, err := img.ImageHeader()
	switch {
	case err == nil:
		fmt.Fprintf(a.out, "Image:%s\n", hdr)
	case errors.Is(err, png.ErrChunkNotFound):
		a.log.Log("%s: no IHDR chunk", filename)
	default:
		a.log.Log("%s: %v", filename, err)
	}
	fmt.Fprint(a.out, img)
	return nil
}

// grep prints the names of files that have a tEXt chunk matching re. It
// stops at the first file that can't be read or parsed.
func (a *app) grep(re string, filenames []string, caseins, showmatch bool) error {
	if caseins {
		re = "(?i)" + re
	}
	rx, err := regexp.Compile(re)
	if err != nil {
		return fmt.Errorf("invalid regexp '%s': %w", re, err)
	}
	matched := false
	for _, filename := range filenames {
		found, chunks, err := grepOneFile(filename, rx)
		if err != nil {
			return err
		}
		if found {
			fmt.Fprintln(a.out, filename)
			if showmatch {
				for _, m := range chunks {
					fmt.Fprintf(a.out, "%#v\n", m)
				}
			}
			matched = true
		}
	}
	if !matched {
		return errNoMatch
	}
	return nil
}

func grepOneFile(filename string, rx *regexp.Regexp) (bool, []string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return false, []string{}, err
	}
	defer file.Close()
	found, chunk, err := grePNG(file, rx)
	if err != nil {
		return false, []string{}, fmt.Errorf("%s: %w", filename, err)
	}
	return found, chunk, nil
}

func grePNG(r io.Reader, rx *regexp.Regexp) (bool, []string, error) {
	var chunks []string
	img, err := png.Load(r)
	if err != nil {
		return false, chunks, err
	}

	for _, tc := range img.TextChunks() {
		ret := rx.FindStringIndex(tc)
		if ret != nil {
			chunks = append(chunks, tc)
		}
	}
	return len(chunks) > 0, chunks, nil
}

func readPNG(filename string) (*png.PNG, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	img, err := png.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return img, nil
}
