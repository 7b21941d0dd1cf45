package source

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmylchreest/piccolor/internal/version"
)

// fetchTimeout bounds remote image downloads.
const fetchTimeout = 10 * time.Second

// fetchRemote downloads an image over HTTPS and caches the bytes so
// repeated analyses of the same URL skip the network.
func fetchRemote(ctx context.Context, rawURL, cacheDir string) ([]byte, error) {
	if err := validateRemoteURL(rawURL); err != nil {
		return nil, err
	}

	if cacheDir == "" {
		dir, err := defaultCacheDir()
		if err != nil {
			return nil, err
		}
		cacheDir = dir
	}

	cachedPath := filepath.Join(cacheDir, cacheFilename(rawURL))
	if data, err := os.ReadFile(cachedPath); err == nil { // #nosec G304 - Path derived from URL hash
		return data, nil
	}

	data, err := download(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	// Cache failures are not fatal: the analysis can proceed with the
	// downloaded bytes.
	if err := os.MkdirAll(cacheDir, 0o755); err == nil { // #nosec G301 - Cache directory needs standard permissions
		_ = os.WriteFile(cachedPath, data, 0o644) // #nosec G306 - Cache files need standard read permissions
	}

	return data, nil
}

// validateRemoteURL accepts only HTTPS URLs pointing at public hosts.
func validateRemoteURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if !strings.EqualFold(parsed.Scheme, "https") {
		return fmt.Errorf("only HTTPS URLs are allowed (got %s)", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL must have a hostname")
	}
	if host := strings.ToLower(parsed.Hostname()); isLocalOrPrivateHost(host) {
		return fmt.Errorf("URL cannot point to local or private hosts: %s", host)
	}
	return nil
}

// download fetches the URL with a bounded timeout and a versioned
// User-Agent.
func download(ctx context.Context, rawURL string) ([]byte, error) {
	client := &http.Client{Timeout: fetchTimeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", fmt.Sprintf("piccolor/%s", version.Version))

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}

// defaultCacheDir returns the download cache location, preferring the
// platform cache directory.
func defaultCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "piccolor", "images"), nil
	}
	return filepath.Join(cacheDir, "piccolor", "images"), nil
}

// cacheFilename derives a deterministic cache filename from a URL.
func cacheFilename(rawURL string) string {
	hash := sha256.Sum256([]byte(rawURL))
	name := fmt.Sprintf("%x", hash[:16])

	ext := filepath.Ext(rawURL)
	if idx := strings.IndexByte(ext, '?'); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 {
		ext = ".img"
	}
	return name + ext
}

// isLocalOrPrivateHost reports whether a hostname is localhost or a
// private address, which remote fetches refuse to touch.
func isLocalOrPrivateHost(host string) bool {
	if host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return true
	}

	for _, prefix := range []string{"192.168.", "10.", "169.254.", "fe80:", "fc00:", "fd00:"} {
		if strings.HasPrefix(host, prefix) {
			return true
		}
	}

	// 172.16.0.0/12
	if rest, ok := strings.CutPrefix(host, "172."); ok {
		if idx := strings.IndexByte(rest, '.'); idx > 0 {
			var octet int
			if _, err := fmt.Sscanf(rest[:idx], "%d", &octet); err == nil && octet >= 16 && octet <= 31 {
				return true
			}
		}
	}

	return false
}
