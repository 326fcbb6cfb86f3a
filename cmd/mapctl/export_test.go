package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetExportFlags() {
	resetFlags()
	exportFormat = "xml"
	exportOutput = stdoutPath
	exportSkipData = false
	exportClipboard = false
}

func TestExportCommand_Stdout(t *testing.T) {
	tests := []struct {
		name           string
		format         string
		skipData       bool
		wantJSON       bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:   "xml",
			format: "xml",
			wantContain: []string{
				"<mapfile", `<section name="MemoryMap">`, `<segments count="4">`,
				`<segment name=".data"`, `load_address="0x0000000000403000"`,
				`object="elf-init.oS"`, "<data>", "<objects count=\"4\">",
			},
		},
		{
			name:           "xml without data",
			format:         "xml",
			skipData:       true,
			wantContain:    []string{`<entry name=".text.main"`},
			wantNotContain: []string{"<data>"},
		},
		{
			name:        "json",
			format:      "json",
			wantJSON:    true,
			wantContain: []string{`"load_address": 4206592`},
		},
		{
			name:        "text",
			format:      "text",
			wantContain: []string{"SEGMENT", "OBJECT", ".bss"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetExportFlags()
			exportFormat = tt.format
			exportSkipData = tt.skipData

			output, err := captureOutput(t, func() error {
				return runExport([]string{testMapPath(t, "hello.map")})
			})
			require.NoError(t, err)

			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestExportCommand_ToFile(t *testing.T) {
	dir := t.TempDir()

	for _, format := range []string{"xml", "xlsx", "json"} {
		t.Run(format, func(t *testing.T) {
			resetExportFlags()
			exportFormat = format
			exportOutput = filepath.Join(dir, "hello."+format)

			output, err := captureOutput(t, func() error {
				return runExport([]string{testMapPath(t, "hello.map")})
			})
			require.NoError(t, err)
			assert.Contains(t, output, "Exported 4 segments to ")

			info, err := os.Stat(exportOutput)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestExportCommand_Errors(t *testing.T) {
	resetExportFlags()
	exportFormat = "xlsx"
	_, err := captureOutput(t, func() error {
		return runExport([]string{testMapPath(t, "hello.map")})
	})
	assert.ErrorContains(t, err, "--output")

	resetExportFlags()
	exportFormat = "xlsx"
	exportOutput = filepath.Join(t.TempDir(), "out.xlsx")
	exportClipboard = true
	_, err = captureOutput(t, func() error {
		return runExport([]string{testMapPath(t, "hello.map")})
	})
	assert.ErrorContains(t, err, "clipboard")

	resetExportFlags()
	exportFormat = "csv"
	_, err = captureOutput(t, func() error {
		return runExport([]string{testMapPath(t, "hello.map")})
	})
	assert.ErrorContains(t, err, "unknown report format")
}

func TestExportCommand_Clipboard(t *testing.T) {
	var copied string
	orig := clipboardWrite
	clipboardWrite = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { clipboardWrite = orig })

	resetExportFlags()
	exportFormat = "json"
	exportClipboard = true

	output, err := captureOutput(t, func() error {
		return runExport([]string{testMapPath(t, "hello.map")})
	})
	require.NoError(t, err)

	assert.Contains(t, output, "Copied json report to the clipboard")
	assert.False(t, strings.Contains(output, `"segments"`), "report is not echoed to stdout")
	assertJSON(t, copied)
	assert.Contains(t, copied, `"segments"`)
}
