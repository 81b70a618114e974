// Package loader handles ROM file loading operations.
package loader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/cespare/xxhash"
	"github.com/retroenv/retrochip8/internal/chip8"
)

var errEmptyArchive = errors.New("archive contains no files")

// ROM is a loaded program image.
type ROM struct {
	Name string // file name, or archive entry name for archives
	Data []byte
	Hash uint64 // xxhash of the data
}

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a ROM file. Raw images are read as is, .zip, .7z and .gz
// files are decompressed and the first file of an archive is used.
// ROMs that do not fit into the program space are rejected.
func (l *Loader) Load(path string) (ROM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ROM{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	rom := ROM{
		Name: filepath.Base(path),
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		rom.Name, rom.Data, err = readZip(data)
	case ".7z":
		rom.Name, rom.Data, err = read7z(data)
	case ".gz":
		rom.Name = strings.TrimSuffix(rom.Name, filepath.Ext(rom.Name))
		rom.Data, err = readGzip(data)
	default:
		rom.Data = data
	}
	if err != nil {
		return ROM{}, fmt.Errorf("decompressing file %s: %w", path, err)
	}

	if len(rom.Data) > chip8.MaxROMSize {
		return ROM{}, fmt.Errorf("rom %s has %d bytes, maximum is %d: %w",
			rom.Name, len(rom.Data), chip8.MaxROMSize, chip8.ErrInputSize)
	}

	rom.Hash = xxhash.Sum64(rom.Data)
	return rom, nil
}

func readZip(data []byte) (string, []byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("opening zip archive: %w", err)
	}

	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", nil, fmt.Errorf("opening archive entry %s: %w", file.Name, err)
		}
		content, err := readLimited(rc)
		_ = rc.Close()
		return file.Name, content, err
	}
	return "", nil, errEmptyArchive
}

func read7z(data []byte) (string, []byte, error) {
	reader, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("opening 7z archive: %w", err)
	}

	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", nil, fmt.Errorf("opening archive entry %s: %w", file.Name, err)
		}
		content, err := readLimited(rc)
		_ = rc.Close()
		return file.Name, content, err
	}
	return "", nil, errEmptyArchive
}

func readGzip(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	defer func() { _ = reader.Close() }()

	return readLimited(reader)
}

// readLimited reads at most one byte more than fits into program memory,
// which is enough for the size check and avoids decompressing large files.
func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, chip8.MaxROMSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}
	return data, nil
}
