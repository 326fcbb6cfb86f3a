package mapfmt

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// namePattern matches section, symbol, archive and object names. Parens
	// are excluded so that "lib.a(obj.o)" splits deterministically.
	namePattern = `[[:alnum:]_.$/\\:*"+~@-]+`

	// hexPattern matches a 0x-prefixed number and captures its digits.
	hexPattern = `0x([[:xdigit:]]+)`
)

var (
	recordNameRe = regexp.MustCompile(`^\s*(` + namePattern + `)`)
	headerNameRe = regexp.MustCompile(`^(` + namePattern + `)`)
	hexRe        = regexp.MustCompile(`^` + hexPattern + `$`)
	hexPairRe    = regexp.MustCompile(`^\s+` + hexPattern + `\s+` + hexPattern + `(?:\s|$)`)
	infoRe       = regexp.MustCompile(`^\s+` + hexPattern + `\s+` + hexPattern +
		`(?:\s+(?:(` + namePattern + `)\((` + namePattern + `)\)|(` + namePattern + `)))?`)
	fillRe        = regexp.MustCompile(`^\s*\*fill\*\s+` + hexPattern + `\s+` + hexPattern)
	symbolRe      = regexp.MustCompile(`^\s+` + hexPattern + `\s+([A-Za-z_.$][^=]*?)\s*$`)
	assignmentRe  = regexp.MustCompile(`^\s+` + hexPattern + `\s+.*=`)
	loadAddressRe = regexp.MustCompile(LoadAddressMarker + `\s+` + hexPattern)
)

// HexPair is an address followed by a size.
type HexPair struct {
	Address uint64
	Size    uint64
}

// Info is a decoded record info line: address, size and optional provenance.
type Info struct {
	Address uint64
	Size    uint64
	Library string // only set together with Object
	Object  string
}

// HasProvenance reports whether the info line named an object.
func (i Info) HasProvenance() bool {
	return i.Object != ""
}

// IsHex reports whether s is a complete 0x-prefixed hexadecimal number.
func IsHex(s string) bool {
	return hexRe.MatchString(s)
}

// ParseHex parses a hexadecimal number with or without the 0x prefix.
func ParseHex(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(s, HexPrefix), 16, 64)
}

// MatchName matches a record name at the start of line, tolerating leading
// whitespace. end is the byte offset just past the name.
func MatchName(line string) (name string, end int, ok bool) {
	m := recordNameRe.FindStringSubmatchIndex(line)
	if m == nil {
		return "", 0, false
	}
	return line[m[2]:m[3]], m[3], true
}

// MatchHeaderName matches a segment name starting at column 0.
func MatchHeaderName(line string) (name string, end int, ok bool) {
	m := headerNameRe.FindStringSubmatchIndex(line)
	if m == nil {
		return "", 0, false
	}
	return line[m[2]:m[3]], m[3], true
}

// MatchHexPair matches whitespace, an address and a size at the start of s.
func MatchHexPair(s string) (HexPair, bool) {
	m := hexPairRe.FindStringSubmatch(s)
	if m == nil {
		return HexPair{}, false
	}
	return parsePair(m[1], m[2])
}

// MatchInfo matches an info line: address, size, then either
// "library(object)", a bare "object", or nothing.
func MatchInfo(s string) (Info, bool) {
	m := infoRe.FindStringSubmatch(s)
	if m == nil {
		return Info{}, false
	}
	pair, ok := parsePair(m[1], m[2])
	if !ok {
		return Info{}, false
	}
	info := Info{Address: pair.Address, Size: pair.Size}
	switch {
	case m[4] != "":
		info.Library = m[3]
		info.Object = m[4]
	case m[5] != "":
		info.Object = m[5]
	}
	return info, true
}

// MatchFill matches a "*fill*" line and returns its address and size.
func MatchFill(line string) (HexPair, bool) {
	m := fillRe.FindStringSubmatch(line)
	if m == nil {
		return HexPair{}, false
	}
	return parsePair(m[1], m[2])
}

// MatchSymbol matches a symbol definition line: an indented address followed
// by a name, with no size and no assignment.
func MatchSymbol(line string) (address uint64, name string, ok bool) {
	m := symbolRe.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	address, err := ParseHex(m[1])
	if err != nil {
		return 0, "", false
	}
	return address, m[2], true
}

// MatchLoadAddress finds "load address 0x..." anywhere in s.
func MatchLoadAddress(s string) (uint64, bool) {
	m := loadAddressRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	address, err := ParseHex(m[1])
	if err != nil {
		return 0, false
	}
	return address, true
}

func parsePair(address, size string) (HexPair, bool) {
	a, err := ParseHex(address)
	if err != nil {
		return HexPair{}, false
	}
	s, err := ParseHex(size)
	if err != nil {
		return HexPair{}, false
	}
	return HexPair{Address: a, Size: s}, true
}

// ============================================================================
// Line classification
// ============================================================================

// IsBlank reports whether line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsFill reports whether line is a padding line.
func IsFill(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), FillMarker)
}

// IsNoise reports whether line is a linker script echo (sort/alignment
// directives, KEEP/PROVIDE, FILL mask, input section patterns) or a symbol
// assignment. Noise lines never start a record and are never errors.
func IsNoise(line string) bool {
	if strings.Contains(line, SortMarker) {
		return true
	}
	trimmed := strings.TrimSpace(line)
	for _, prefix := range scriptEchoPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return assignmentRe.MatchString(line)
}

// IsDirective reports whether line is a linker directive (LOAD, OUTPUT(...),
// START GROUP, ...) or noise, neither of which can head a segment. Any line
// containing LOAD counts as a directive.
func IsDirective(line string) bool {
	if IsNoise(line) || strings.Contains(line, LoadMarker) {
		return true
	}
	word := strings.TrimSpace(line)
	if i := strings.IndexAny(word, " \t("); i >= 0 {
		word = word[:i]
	}
	for _, kw := range directiveKeywords {
		if word == kw {
			return true
		}
	}
	return false
}

// StartsRecord reports whether line opens a new record: one leading space
// followed by an alphanumeric, '.' or '/' character.
func StartsRecord(line string) bool {
	if len(line) < 2 || line[0] != RecordIndent {
		return false
	}
	if !isRecordLead(line[1]) {
		return false
	}
	return !IsNoise(line) && !IsFill(line)
}

// StartsBlock reports whether line opens a new section at column 0.
func StartsBlock(line string) bool {
	return line != "" && line[0] != ' ' && line[0] != '\t'
}

func isRecordLead(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '.', c == '/':
		return true
	}
	return false
}
