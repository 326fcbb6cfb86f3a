// Package mapfmt holds the tokens of the GNU ld map file format and the named
// pattern matchers built from them.
package mapfmt

const (
	// ============================================================================
	// Top-Level Section Titles
	// ============================================================================

	// TitleArchiveMembers starts the archive member list
	TitleArchiveMembers = "Archive member included"

	// TitleCommonSymbols starts the common symbol allocation list
	TitleCommonSymbols = "Allocating common symbols"

	// TitleDiscardedInput starts the list of discarded input sections
	TitleDiscardedInput = "Discarded input sections"

	// TitleMemoryConfiguration starts the memory region table
	TitleMemoryConfiguration = "Memory Configuration"

	// TitleMemoryMap starts the linker script and memory map block
	TitleMemoryMap = "Linker script and memory map"

	// TitleCrossReference starts the --cref table, which follows the memory map
	TitleCrossReference = "Cross Reference Table"

	// ============================================================================
	// Markers
	// ============================================================================

	// FillMarker prefixes a padding line inside a segment
	FillMarker = "*fill*"

	// FillMaskMarker prefixes a FILL directive echo
	FillMaskMarker = "FILL mask"

	// SortMarker appears in SORT_BY_NAME / SORT_BY_ALIGNMENT directive echoes
	SortMarker = "(SORT_BY_"

	// LoadAddressMarker introduces the LMA on a segment header line
	LoadAddressMarker = "load address"

	// HexPrefix prefixes every address and size
	HexPrefix = "0x"

	// ============================================================================
	// Layout
	// ============================================================================

	// BlockSeparator separates segments in the memory map block
	BlockSeparator = "\n\n"

	// LF is the line separator after input normalization
	LF = "\n"

	// CR is stripped from CRLF input
	CR = "\r"

	// CRLF is the Windows line ending
	CRLF = "\r\n"

	// RecordIndent is the indentation of a record's first line
	RecordIndent = ' '
)

// LoadMarker marks a linker directive wherever it appears in a header line.
const LoadMarker = "LOAD"

// Linker directive keywords that appear at column 0 inside the memory map and
// never name a segment.
var directiveKeywords = []string{
	"LOAD",
	"OUTPUT",
	"INPUT",
	"GROUP",
	"SEARCH_DIR",
	"STARTUP",
	"TARGET",
	"START",
	"END",
}

// Prefixes (after trimming) of linker script echo lines.
var scriptEchoPrefixes = []string{
	"*(",
	"KEEP",
	"SORT",
	"PROVIDE",
	"ASSERT",
	"EXCLUDE_FILE",
	"[!provide]",
	FillMaskMarker,
}
