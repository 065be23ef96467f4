package imagegate

import (
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"
	"sync"
)

// DecodeStatus is the ternary result of a full-decode attempt.
type DecodeStatus int

const (
	// DecodeUnsupported means no decoder is registered for the
	// extension. It carries no signal either way; prior checks stand.
	DecodeUnsupported DecodeStatus = iota

	// DecodeOK means the file decoded as a well-formed instance of its
	// codec.
	DecodeOK

	// DecodeFailed means a decode was attempted and rejected the file.
	DecodeFailed
)

// DecodeFunc fully decodes image data from r, returning an error if the
// data is not a well-formed instance of the codec.
type DecodeFunc func(r io.Reader) error

// DecodeProbe attempts a full decode through the codec implied by a
// file's extension to confirm structural validity, not merely
// header-level plausibility.
type DecodeProbe struct {
	mu       sync.RWMutex
	decoders map[string]DecodeFunc
}

// NewDecodeProbe creates a probe with the gif, jpg, jpeg and png
// decoders registered.
func NewDecodeProbe() *DecodeProbe {
	p := &DecodeProbe{decoders: make(map[string]DecodeFunc)}
	p.Register("gif", func(r io.Reader) error {
		_, err := gif.Decode(r)
		return err
	})
	jpegDecode := func(r io.Reader) error {
		_, err := jpeg.Decode(r)
		return err
	}
	p.Register("jpg", jpegDecode)
	p.Register("jpeg", jpegDecode)
	p.Register("png", func(r io.Reader) error {
		_, err := png.Decode(r)
		return err
	})
	return p
}

// Register adds or replaces the decoder for an extension.
func (p *DecodeProbe) Register(ext string, fn DecodeFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.decoders[strings.ToLower(ext)] = fn
}

// Unregister removes the decoder for an extension. Subsequent probes
// for it return DecodeUnsupported.
func (p *DecodeProbe) Unregister(ext string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.decoders, strings.ToLower(ext))
}

// Probe decodes the file with the decoder registered for ext.
func (p *DecodeProbe) Probe(path, ext string) DecodeStatus {
	p.mu.RLock()
	fn := p.decoders[strings.ToLower(ext)]
	p.mu.RUnlock()
	if fn == nil {
		return DecodeUnsupported
	}

	f, err := os.Open(path)
	if err != nil {
		return DecodeFailed
	}
	defer f.Close()

	return runDecode(fn, f)
}

// runDecode collapses decoder errors and panics into the ternary
// result; low-level codec diagnostics do not propagate.
func runDecode(fn DecodeFunc, r io.Reader) (status DecodeStatus) {
	defer func() {
		if recover() != nil {
			status = DecodeFailed
		}
	}()
	if err := fn(r); err != nil {
		return DecodeFailed
	}
	return DecodeOK
}
