package mapfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHex(t *testing.T) {
	assert.True(t, IsHex("0x0000000000001000"))
	assert.True(t, IsHex("0xdeadBEEF"))
	assert.False(t, IsHex("1000"))
	assert.False(t, IsHex("0x"))
	assert.False(t, IsHex("0x12g"))

	n, err := ParseHex("0x20")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x20), n)

	n, err = ParseHex("ffffffffffffffff")
	require.NoError(t, err)
	assert.Equal(t, uint64(0xffffffffffffffff), n)

	_, err = ParseHex("0x1ffffffffffffffff")
	assert.Error(t, err, "overflow")
}

func TestMatchers_RejectHexOverflow(t *testing.T) {
	const big = "0x1ffffffffffffffff"

	_, ok := MatchHexPair("   " + big + " 0x10")
	assert.False(t, ok)
	_, ok = MatchFill(" *fill*  0x10 " + big)
	assert.False(t, ok)
	_, _, ok = MatchSymbol("                " + big + "                main")
	assert.False(t, ok)
	_, ok = MatchLoadAddress("0x0 0x8 load address " + big)
	assert.False(t, ok)

	addr, ok := MatchLoadAddress("0x0 0x8 load address 0xffffffffffffffff")
	require.True(t, ok)
	assert.Equal(t, uint64(0xffffffffffffffff), addr)
}

func TestMatchName(t *testing.T) {
	tests := []struct {
		line string
		name string
		ok   bool
	}{
		{line: " .text.main 0x0 0x10 a.o", name: ".text.main", ok: true},
		{line: "   .text", name: ".text", ok: true},
		{line: " COMMON", name: "COMMON", ok: true},
		{line: " /usr/lib/crt1.o", name: "/usr/lib/crt1.o", ok: true},
		{line: " _ZN3foo3barEv", name: "_ZN3foo3barEv", ok: true},
		{line: " (garbage)", ok: false},
		{line: "", ok: false},
	}
	for _, tt := range tests {
		name, end, ok := MatchName(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		if tt.ok {
			assert.Equal(t, tt.name, name, tt.line)
			assert.Equal(t, tt.name, tt.line[end-len(name):end], tt.line)
		}
	}
}

func TestMatchHeaderName(t *testing.T) {
	name, end, ok := MatchHeaderName(".text           0x0000000000401000      0x1b5")
	require.True(t, ok)
	assert.Equal(t, ".text", name)
	assert.Equal(t, 5, end)

	_, _, ok = MatchHeaderName(" .text 0x0 0x0")
	assert.False(t, ok, "headers start at column 0")
}

func TestMatchHexPair(t *testing.T) {
	pair, ok := MatchHexPair("           0x0000000000001000       0x10")
	require.True(t, ok)
	assert.Equal(t, HexPair{Address: 0x1000, Size: 0x10}, pair)

	pair, ok = MatchHexPair(" 0x100 0x8 load address 0x200")
	require.True(t, ok)
	assert.Equal(t, HexPair{Address: 0x100, Size: 0x8}, pair)

	_, ok = MatchHexPair(" 100 0x8")
	assert.False(t, ok)
	_, ok = MatchHexPair(" 0x100")
	assert.False(t, ok)
	_, ok = MatchHexPair("0x100 0x8")
	assert.False(t, ok, "leading whitespace required")
}

func TestMatchInfo(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Info
		ok   bool
	}{
		{
			name: "library and object",
			in:   "  0x0000000000000010       0x20 libfoo.a(bar.o)",
			want: Info{Address: 0x10, Size: 0x20, Library: "libfoo.a", Object: "bar.o"},
			ok:   true,
		},
		{
			name: "bare object",
			in:   "                0x0000000000401000       0x2f /usr/lib/x86_64-linux-gnu/crt1.o",
			want: Info{Address: 0x401000, Size: 0x2f, Object: "/usr/lib/x86_64-linux-gnu/crt1.o"},
			ok:   true,
		},
		{
			name: "library path with dashes",
			in:   " 0x0000000008000400 0x44 /opt/arm/lib/libc_nano.a(lib_a-memcpy.o)",
			want: Info{Address: 0x8000400, Size: 0x44, Library: "/opt/arm/lib/libc_nano.a", Object: "lib_a-memcpy.o"},
			ok:   true,
		},
		{
			name: "no provenance",
			in:   "   0x0000000000001000       0x10",
			want: Info{Address: 0x1000, Size: 0x10},
			ok:   true,
		},
		{
			name: "decimal address",
			in:   "  16 0x20 bar.o",
			ok:   false,
		},
		{
			name: "decimal size",
			in:   "  0x10 32 bar.o",
			ok:   false,
		},
		{
			name: "missing size",
			in:   "  0x10 bar.o",
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchInfo(tt.in)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Object != "", got.HasProvenance())
		})
	}
}

func TestMatchFill(t *testing.T) {
	pair, ok := MatchFill(" *fill*         0x000000000040106f        0x1 ")
	require.True(t, ok)
	assert.Equal(t, HexPair{Address: 0x40106f, Size: 0x1}, pair)

	_, ok = MatchFill(" *fill*         0x000000000040106f")
	assert.False(t, ok)
	_, ok = MatchFill(" .text 0x0 0x1 a.o")
	assert.False(t, ok)
}

func TestMatchSymbol(t *testing.T) {
	addr, name, ok := MatchSymbol("                0x0000000000401040                _start")
	require.True(t, ok)
	assert.Equal(t, uint64(0x401040), addr)
	assert.Equal(t, "_start", name)

	_, name, ok = MatchSymbol("                0x0000000000401126                foo(int, char const*)")
	require.True(t, ok)
	assert.Equal(t, "foo(int, char const*)", name)

	_, _, ok = MatchSymbol("                0x0000000000401000                . = ALIGN (0x10)")
	assert.False(t, ok, "assignments are not symbols")
	_, _, ok = MatchSymbol("                0x0000000000401000       0x20")
	assert.False(t, ok, "address/size continuation is not a symbol")
}

func TestMatchLoadAddress(t *testing.T) {
	addr, ok := MatchLoadAddress(".data           0x0000000020000000       0x10 load address 0x0000000008001234")
	require.True(t, ok)
	assert.Equal(t, uint64(0x8001234), addr)

	_, ok = MatchLoadAddress(".data 0x0 0x10")
	assert.False(t, ok)
}

func TestIsNoise(t *testing.T) {
	noise := []string{
		" *(SORT_BY_ALIGNMENT(.text.*))",
		" *(.text.unlikely .text.*_unlikely .text.unlikely.*)",
		" KEEP (*(SORT_NONE(.init)))",
		" FILL mask 0x00",
		"                [!provide]                        PROVIDE (__executable_start = SEGMENT_START (\"text-segment\", 0x400000))",
		"                0x0000000000400238                . = (SEGMENT_START (\"text-segment\", 0x400000) + SIZEOF_HEADERS)",
		"                0x0000000000404028                _edata = .",
	}
	for _, line := range noise {
		assert.True(t, IsNoise(line), line)
	}

	signal := []string{
		" .text          0x0000000000401040       0x2f crt1.o",
		"                0x0000000000401040                _start",
		" *fill*         0x000000000040106f        0x1 ",
		".text           0x0000000000401000      0x1b5",
	}
	for _, line := range signal {
		assert.False(t, IsNoise(line), line)
	}
}

func TestIsDirective(t *testing.T) {
	for _, line := range []string{
		"LOAD /usr/lib/x86_64-linux-gnu/crt1.o",
		"    LOAD libfoo.a",
		"OUTPUT(a.out elf64-x86-64)",
		"START GROUP",
		"END GROUP",
		"                0x0000000000400238                . = ALIGN (0x8)",
		".LOADER 0x0 0x0",
		"LOADABLE",
	} {
		assert.True(t, IsDirective(line), line)
	}
	for _, line := range []string{".text", ".loader 0x0 0x4", "OUTPUTS 0x0 0x4"} {
		assert.False(t, IsDirective(line), line)
	}
}

func TestStartsRecord(t *testing.T) {
	starts := []string{
		" .text          0x0000000000401040       0x2f crt1.o",
		" .text.a_very_long_function_name",
		" COMMON         0x0000000000404030        0x4 main.o",
		" /DISCARD/",
		" 0x",
	}
	for _, line := range starts {
		assert.True(t, StartsRecord(line), line)
	}

	others := []string{
		"",
		" ",
		".text 0x0 0x0",
		"  .text",
		"                0x0000000000401040                _start",
		" *fill*         0x000000000040106f        0x1 ",
		" *(.text)",
		" FILL mask 0xff",
		" KEEP (*(.init))",
		" SORT(.ctors)",
		" _start",
	}
	for _, line := range others {
		assert.False(t, StartsRecord(line), "%q", line)
	}
}

func TestStartsBlock(t *testing.T) {
	assert.True(t, StartsBlock(".text"))
	assert.True(t, StartsBlock("LOAD a.o"))
	assert.False(t, StartsBlock(""))
	assert.False(t, StartsBlock(" .text"))
	assert.False(t, StartsBlock("\t.text"))
}

func TestIsFillAndBlank(t *testing.T) {
	assert.True(t, IsFill(" *fill* 0x0 0x1"))
	assert.True(t, IsFill("\t*fill*"))
	assert.False(t, IsFill(" .fill"))

	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   \t"))
	assert.False(t, IsBlank(" x"))
}
