package maptext

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/mapkit/internal/mapfmt"
	"github.com/joshuapare/mapkit/pkg/types"
)

// Supported values for types.ParseOptions.InputEncoding.
const (
	EncodingUTF8        = "UTF-8"
	EncodingUTF16LE     = "UTF-16LE"
	EncodingWindows1252 = "WINDOWS-1252"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
)

// DecodeInput turns raw map file bytes into LF-terminated UTF-8 text.
//
// A UTF-8 or UTF-16LE byte order mark wins over enc. With enc empty, input
// that is not valid UTF-8 is read as Windows-1252, which is what toolchains
// on Windows hosts emit for non-ASCII paths.
func DecodeInput(data []byte, enc string) (string, error) {
	if bytes.HasPrefix(data, utf16LEBOM) {
		return decodeUTF16LE(data[len(utf16LEBOM):])
	}
	if bytes.HasPrefix(data, utf8BOM) {
		data = data[len(utf8BOM):]
		enc = EncodingUTF8
	}

	switch strings.ToUpper(enc) {
	case "":
		if utf8.Valid(data) {
			return NormalizeNewlines(string(data)), nil
		}
		return decodeWindows1252(data)
	case EncodingUTF8, "UTF8":
		return NormalizeNewlines(strings.ToValidUTF8(string(data), string(utf8.RuneError))), nil
	case EncodingUTF16LE, "UTF16LE", "UTF-16":
		return decodeUTF16LE(data)
	case EncodingWindows1252, "CP1252", "WINDOWS1252":
		return decodeWindows1252(data)
	default:
		return "", &types.Error{
			Kind: types.ErrKindEncoding,
			Msg:  fmt.Sprintf("unsupported input encoding %q", enc),
		}
	}
}

func decodeUTF16LE(data []byte) (string, error) {
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data)
	if err != nil {
		return "", &types.Error{Kind: types.ErrKindEncoding, Msg: "decode UTF-16LE input", Err: err}
	}
	return NormalizeNewlines(string(out)), nil
}

func decodeWindows1252(data []byte) (string, error) {
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", &types.Error{Kind: types.ErrKindEncoding, Msg: "decode Windows-1252 input", Err: err}
	}
	return NormalizeNewlines(string(out)), nil
}

// NormalizeNewlines turns CRLF and lone CR line endings into LF.
func NormalizeNewlines(s string) string {
	if !strings.Contains(s, mapfmt.CR) {
		return s
	}
	s = strings.ReplaceAll(s, mapfmt.CRLF, mapfmt.LF)
	return strings.ReplaceAll(s, mapfmt.CR, mapfmt.LF)
}
