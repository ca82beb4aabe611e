// Package archive stores proof-of-purchase files content-addressed: each
// file is named by its checksum, so identical bytes are stored once.
package archive

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/erazemk/proofpal/internal/model"
)

// checksumChunkSize bounds memory use while hashing, regardless of file size.
const checksumChunkSize = 1 << 20

// namePrefixLen is how many hex characters of the checksum form the stored
// file name.
const namePrefixLen = 16

// Archive is a content-addressed file store rooted at one directory, with
// one subdirectory per item.
type Archive struct {
	root string
}

// New returns an archive rooted at dir.
func New(dir string) *Archive {
	return &Archive{root: dir}
}

// ItemDir returns the directory holding an item's files, creating it if
// needed.
func (a *Archive) ItemDir(itemID int64) (string, error) {
	dir := filepath.Join(a.root, strconv.FormatInt(itemID, 10))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating item directory: %w", err)
	}
	return dir, nil
}

// CopyFileToItem copies src into the item's archive directory, named by the
// first 16 hex characters of its SHA-256 plus the original extension. If a
// file with that name already exists the copy is skipped: identical bytes
// resolve to the same stored file. Returns the descriptor for the stored
// file; no database row is written here.
func (a *Archive) CopyFileToItem(src string, itemID int64) (*model.File, error) {
	if _, err := os.Stat(src); err != nil {
		return nil, fmt.Errorf("source file %s: %w", src, err)
	}

	checksum, err := Checksum(src)
	if err != nil {
		return nil, err
	}

	dir, err := a.ItemDir(itemID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(src))
	dest := filepath.Join(dir, checksum[:namePrefixLen]+ext)

	if _, err := os.Stat(dest); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("checking destination: %w", err)
		}
		if err := copyFile(src, dest); err != nil {
			return nil, err
		}
	}

	info, err := os.Stat(dest)
	if err != nil {
		return nil, fmt.Errorf("stat stored file: %w", err)
	}

	return &model.File{
		Path:       dest,
		MIME:       guessMIME(dest),
		Size:       info.Size(),
		Checksum:   checksum,
		UploadedAt: time.Now().UTC().Truncate(time.Second),
	}, nil
}

// RemoveFile deletes a stored file. If the item's directory becomes empty
// it is removed too, opportunistically: a directory that won't go is not
// an error.
func (a *Archive) RemoveFile(path string) error {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("removing stored file: %w", err)
	}
	// os.Remove refuses non-empty directories, which is exactly the
	// opportunistic behavior wanted here.
	os.Remove(filepath.Dir(path))
	return nil
}

// RemoveItemFiles deletes every stored file for an item along with its
// directory. Used when the item row is deleted, since row deletion alone
// does not free disk space.
func (a *Archive) RemoveItemFiles(itemID int64) error {
	dir := filepath.Join(a.root, strconv.FormatInt(itemID, 10))
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing item files: %w", err)
	}
	return nil
}

// Checksum computes the SHA-256 of a file's full content, streamed in
// fixed-size chunks.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file for checksum: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	buf := make([]byte, checksumChunkSize)
	if _, err := io.CopyBuffer(hasher, f, buf); err != nil {
		return "", fmt.Errorf("hashing file: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// copyFile copies src to dest, preserving nothing but the bytes.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return fmt.Errorf("copying file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return fmt.Errorf("closing destination: %w", err)
	}
	return nil
}

// guessMIME guesses a MIME type from the file extension.
func guessMIME(path string) string {
	t := mime.TypeByExtension(filepath.Ext(path))
	if t == "" {
		return "application/octet-stream"
	}
	// Drop parameters like "; charset=utf-8".
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}

// IsNotExist reports whether err means the source file was missing.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
