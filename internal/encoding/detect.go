// Package encoding turns uploaded text files of unknown charset into UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names reported by NewUTF8Reader.
const (
	UTF8        = "UTF-8"
	UTF16LE     = "UTF-16LE"
	UTF16BE     = "UTF-16BE"
	Windows1252 = "windows-1252"
)

const sniffLen = 4096

var boms = []struct {
	prefix  []byte
	charset string
	enc     xenc.Encoding
}{
	{prefix: []byte{0xEF, 0xBB, 0xBF}, charset: UTF8},
	{prefix: []byte{0xFF, 0xFE}, charset: UTF16LE, enc: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{prefix: []byte{0xFE, 0xFF}, charset: UTF16BE, enc: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// latin maps the chardet guesses we trust to a decoder. Spreadsheet exports on Windows are
// windows-1252, which chardet usually reports as ISO-8859-1.
var latin = map[string]xenc.Encoding{
	"ISO-8859-1":  charmap.Windows1252,
	Windows1252:   charmap.Windows1252,
	"ISO-8859-9":  charmap.ISO8859_9,
	"ISO-8859-15": charmap.ISO8859_15,
}

// NewUTF8Reader returns r decoded to UTF-8 along with the charset it was read as.
//
// A byte order mark wins. Otherwise content that is already valid UTF-8 passes through,
// a Latin charset recognized by chardet is decoded as such, and anything else is read
// as windows-1252.
func NewUTF8Reader(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	atEOF := errors.Is(err, io.EOF)

	if err != nil && !atEOF {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	for _, bom := range boms {
		if !bytes.HasPrefix(head, bom.prefix) {
			continue
		}

		if bom.enc == nil {
			_, _ = br.Discard(len(bom.prefix))
			return br, bom.charset, nil
		}

		return transform.NewReader(br, bom.enc.NewDecoder()), bom.charset, nil
	}

	if !atEOF {
		head = trimPartialRune(head)
	}

	if utf8.Valid(head) {
		return br, UTF8, nil
	}

	charset := Windows1252

	if res, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if _, ok := latin[res.Charset]; ok {
			charset = res.Charset
		}
	}

	return transform.NewReader(br, latin[charset].NewDecoder()), charset, nil
}

// trimPartialRune drops a multi-byte sequence cut off by the end of the sniffed window.
func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(b[i]) {
			continue
		}

		if !utf8.FullRune(b[i:]) {
			return b[:i]
		}

		break
	}

	return b
}
