// Package encoding normalises bank CSV exports to UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names the encoding detected for an input.
type Charset string

const (
	CharsetUTF8        Charset = "UTF-8"
	CharsetUTF8BOM     Charset = "UTF-8-BOM"
	CharsetUTF16LE     Charset = "UTF-16LE"
	CharsetUTF16BE     Charset = "UTF-16BE"
	CharsetWindows1252 Charset = "windows-1252"
	CharsetISO88599    Charset = "ISO-8859-9"
)

const sniffLen = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detect guesses the charset of a leading sample of the input.
//
// BOMs win, then strict UTF-8 validation, then chardet's heuristic;
// anything unrecognised is treated as Windows-1252, which is what Spanish
// online banking exports use.
func Detect(sample []byte) Charset {
	switch {
	case bytes.HasPrefix(sample, bomUTF8):
		return CharsetUTF8BOM
	case bytes.HasPrefix(sample, bomUTF16LE):
		return CharsetUTF16LE
	case bytes.HasPrefix(sample, bomUTF16BE):
		return CharsetUTF16BE
	case validUTF8Prefix(sample):
		return CharsetUTF8
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err == nil {
		switch result.Charset {
		case "UTF-8":
			return CharsetUTF8
		case "ISO-8859-9":
			return CharsetISO88599
		}
	}

	return CharsetWindows1252
}

// NewUTF8Reader returns a reader yielding the content of r as UTF-8,
// with any UTF-8 byte order mark removed.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	sample, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	charset := Detect(sample)
	if charset == CharsetUTF8BOM {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	dec := decoderFor(charset)
	if dec == nil {
		return br, nil
	}

	return transform.NewReader(br, dec.NewDecoder()), nil
}

func decoderFor(c Charset) xenc.Encoding {
	switch c {
	case CharsetUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case CharsetUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case CharsetWindows1252:
		return charmap.Windows1252
	case CharsetISO88599:
		return charmap.ISO8859_9
	}

	return nil
}

// validUTF8Prefix reports whether sample is valid UTF-8, tolerating a
// multi-byte sequence cut off at the end of the sniffed window.
func validUTF8Prefix(sample []byte) bool {
	if utf8.Valid(sample) {
		return true
	}

	for i := 1; i < utf8.UTFMax && i <= len(sample); i++ {
		tail := sample[len(sample)-i:]
		if utf8.RuneStart(tail[0]) && !utf8.FullRune(tail) {
			return utf8.Valid(sample[:len(sample)-i])
		}
	}

	return false
}
