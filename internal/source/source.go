// Package source resolves analyze inputs into raw image bytes. An input
// may be a local file, a directory of images, an HTTPS URL, or "-" for
// stdin.
package source

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SupportedExtensions returns the image file extensions considered when
// scanning a directory.
func SupportedExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff"}
}

// Options configures input resolution.
type Options struct {
	// Stdin is the reader used for the "-" input. Defaults to os.Stdin.
	Stdin io.Reader

	// CacheDir overrides the download cache location for URL inputs.
	CacheDir string
}

// Resolve reads the image bytes named by input. Directories yield a
// randomly selected image file; URLs are fetched and cached locally.
func Resolve(ctx context.Context, input string, opts Options) ([]byte, error) {
	if input == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	if input == "-" {
		stdin := opts.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return fetchRemote(ctx, input, opts.CacheDir)
	}

	info, err := os.Stat(input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file or directory not found: %s", input)
		}
		return nil, fmt.Errorf("failed to access image path: %w", err)
	}

	path := input
	if info.IsDir() {
		path, err = pickFromDirectory(input)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return data, nil
}

// ScanDirectory returns the supported image files directly inside dir.
// It does not recurse into subdirectories, but follows symlinks.
func ScanDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var images []string
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())

		// Stat resolves symlinks; skip anything unreadable or non-file.
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if slices.Contains(SupportedExtensions(), ext) {
			images = append(images, full)
		}
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dir)
	}
	return images, nil
}

// pickFromDirectory scans dir and selects one image at random.
func pickFromDirectory(dir string) (string, error) {
	images, err := ScanDirectory(dir)
	if err != nil {
		return "", err
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(images))))
	if err != nil {
		// Fallback to raw random bytes.
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		return images[binary.LittleEndian.Uint64(buf[:])%uint64(len(images))], nil
	}
	return images[n.Int64()], nil
}
