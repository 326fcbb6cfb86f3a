//go:build !unix

package mmfile

// Open reads the whole file; mapping is only used on unix.
func Open(path string) (*File, error) {
	return readAll(path)
}
