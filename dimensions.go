package imagegate

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// headerDigestSize is the number of leading bytes hashed for the cache
// staleness check.
const headerDigestSize = 512

// DimensionInfo describes the dimensions of a probed image file.
type DimensionInfo struct {
	// Path is the file path the probe ran against.
	Path string

	// Width and Height in pixels.
	Width  int
	Height int

	// SizeLabel is the dimensions as a "WxH" string.
	SizeLabel string

	// Format is the coarse type tag parsed from the image header.
	Format Format
}

// DimensionProbe extracts image dimensions by reading only the bytes
// needed for the header, via image.DecodeConfig. It caches the most
// recent result per file path; a request for a different path, or for
// the same path whose leading bytes have changed, recomputes.
//
// The cache is a performance optimization only. It is guarded by a
// mutex so a shared probe never returns one path's result for another.
type DimensionProbe struct {
	mu      sync.RWMutex
	caching bool
	last    *DimensionInfo
	digest  uint64
}

// NewDimensionProbe creates a probe with caching enabled.
func NewDimensionProbe() *DimensionProbe {
	return &DimensionProbe{caching: true}
}

// DisableCache turns off result caching. Every probe recomputes.
func (p *DimensionProbe) DisableCache() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.caching = false
	p.last = nil
}

// Invalidate drops the cached result if it belongs to path.
func (p *DimensionProbe) Invalidate(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last != nil && p.last.Path == path {
		p.last = nil
	}
}

// Reset drops any cached result.
func (p *DimensionProbe) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = nil
}

// Probe returns the dimensions and format tag for the file. The
// returned info is a copy; mutating it does not affect the cache.
func (p *DimensionProbe) Probe(path string) (*DimensionInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	head := make([]byte, headerDigestSize)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	digest := xxhash.Sum64(head[:n])

	p.mu.RLock()
	if p.caching && p.last != nil && p.last.Path == path && p.digest == digest {
		info := *p.last
		p.mu.RUnlock()
		return &info, nil
	}
	p.mu.RUnlock()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	cfg, name, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("cannot parse image header: %v", err)
	}

	info := &DimensionInfo{
		Path:      path,
		Width:     cfg.Width,
		Height:    cfg.Height,
		SizeLabel: fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		Format:    formatForName(name),
	}

	p.mu.Lock()
	if p.caching {
		cached := *info
		p.last = &cached
		p.digest = digest
	}
	p.mu.Unlock()

	return info, nil
}
