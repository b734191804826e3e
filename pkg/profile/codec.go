package profile

import (
	"bytes"

	"github.com/arthur-debert/codeplex/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies how a profile file is stored on disk
type Encoding int

const (
	// UTF16LE is little-endian UTF-16 with a byte order mark, what the
	// application writes by default
	UTF16LE Encoding = iota
	// UTF16BE is big-endian UTF-16 with a byte order mark
	UTF16BE
	// UTF16LENoBOM is little-endian UTF-16 without a byte order mark
	UTF16LENoBOM
	// UTF8BOM is UTF-8 with a byte order mark
	UTF8BOM
	// UTF8 is UTF-8 without a byte order mark
	UTF8
)

// String returns the name of the encoding
func (e Encoding) String() string {
	switch e {
	case UTF16LE:
		return "utf-16le"
	case UTF16BE:
		return "utf-16be"
	case UTF16LENoBOM:
		return "utf-16le (no bom)"
	case UTF8BOM:
		return "utf-8 (bom)"
	case UTF8:
		return "utf-8"
	default:
		return "unknown"
	}
}

func (e Encoding) codec() encoding.Encoding {
	switch e {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case UTF16LENoBOM:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case UTF8BOM:
		return unicode.UTF8BOM
	default:
		return unicode.UTF8
	}
}

// Detect identifies the encoding of raw from its byte order mark. Without a
// mark, a zero high byte in the first code unit marks UTF-16LE; anything
// else is treated as UTF-8.
func Detect(raw []byte) Encoding {
	switch {
	case bytes.HasPrefix(raw, []byte{0xFF, 0xFE}):
		return UTF16LE
	case bytes.HasPrefix(raw, []byte{0xFE, 0xFF}):
		return UTF16BE
	case bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}):
		return UTF8BOM
	case len(raw) >= 2 && len(raw)%2 == 0 && raw[0] != 0 && raw[1] == 0:
		return UTF16LENoBOM
	default:
		return UTF8
	}
}

// Decode converts raw file content to text. It fails with a CONFIG error
// when encoding the text again would not reproduce raw exactly, so callers
// can rely on untouched regions surviving a rewrite byte for byte.
func Decode(raw []byte) (string, Encoding, error) {
	enc := Detect(raw)

	text, err := enc.codec().NewDecoder().Bytes(raw)
	if err != nil {
		return "", enc, errors.Wrapf(err, errors.ErrConfig, "cannot decode %s content", enc)
	}

	back, err := enc.codec().NewEncoder().Bytes(text)
	if err != nil || !bytes.Equal(back, raw) {
		return "", enc, errors.Newf(errors.ErrConfig,
			"content is not valid %s and cannot be rewritten faithfully", enc)
	}

	return string(text), enc, nil
}

// Encode converts text to bytes in the given encoding
func Encode(text string, enc Encoding) ([]byte, error) {
	raw, err := enc.codec().NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfig, "cannot encode content as %s", enc)
	}
	return raw, nil
}
