package xl

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// Storage is the interface for writing spreadsheet package parts.
// Implementations can write to ZIP archives or directory structures.
//
// Parts are created one at a time; a part is complete once its writer is
// closed and before the next part is created.
type Storage interface {
	Create(path string) (io.WriteCloser, error)
}

// DirStorage writes package parts to a directory structure on disk.
// This is useful for debugging as it allows inspection of generated XML files.
type DirStorage struct {
	Dir string // Root directory path
}

// ZipStorage writes package parts to a ZIP archive, creating a standard .xlsx file.
type ZipStorage struct {
	z *zip.Writer
}

// NewDirStorage creates a new directory-based storage that writes files to the specified directory.
// The directory will be created if it doesn't exist.
func NewDirStorage(dir string) *DirStorage {
	return &DirStorage{
		Dir: dir,
	}
}

// Create opens a file for the part, creating parent directories as needed.
func (ds *DirStorage) Create(path string) (io.WriteCloser, error) {
	path = strings.TrimPrefix(path, "/")
	fn := filepath.Join(ds.Dir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(fn), 0777); err != nil {
		return nil, err
	}
	return os.Create(fn)
}

// NewZipStorage creates a new ZIP-based storage that writes to the given writer.
// The writer is typically a file opened for writing (e.g., os.Create("output.xlsx")).
// Parts are deflated at the given level, 1 (fastest) through 9 (smallest);
// zero selects the default level.
func NewZipStorage(out io.Writer, level int) *ZipStorage {
	if level == 0 {
		level = flate.DefaultCompression
	}
	z := zip.NewWriter(out)
	z.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})
	return &ZipStorage{z: z}
}

// Create starts a new entry in the ZIP archive. Each part becomes a file
// entry with the specified path. The entry ends when the next one is created
// or the archive is closed.
func (zs *ZipStorage) Create(path string) (io.WriteCloser, error) {
	path = strings.TrimPrefix(path, "/")
	f, err := zs.z.Create(path)
	if err != nil {
		return nil, err
	}
	return zipEntry{f}, nil
}

// Close finalizes the ZIP archive. Must be called after all writes are complete.
// Failure to call Close will result in an invalid/corrupted spreadsheet file.
func (zs *ZipStorage) Close() error {
	return zs.z.Close()
}

type zipEntry struct {
	io.Writer
}

func (zipEntry) Close() error { return nil }
