package imagegate

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fillImage creates a solid-color RGBA image of the given size.
func fillImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	return img
}

// encodePNG returns PNG bytes for a width x height image.
func encodePNG(t testing.TB, width, height int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, fillImage(width, height)); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

// encodeJPEG returns JPEG bytes for a width x height image.
func encodeJPEG(t testing.TB, width, height int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, fillImage(width, height), nil); err != nil {
		t.Fatalf("failed to encode JPEG: %v", err)
	}
	return buf.Bytes()
}

// encodeGIF returns GIF bytes for a width x height image.
func encodeGIF(t testing.TB, width, height int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := gif.Encode(buf, fillImage(width, height), nil); err != nil {
		t.Fatalf("failed to encode GIF: %v", err)
	}
	return buf.Bytes()
}

// writeFile writes content under dir and returns the full path.
func writeFile(t testing.TB, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// makePNG writes a width x height PNG under dir with the given name.
func makePNG(t testing.TB, dir, name string, width, height int) string {
	t.Helper()
	return writeFile(t, dir, name, encodePNG(t, width, height))
}

// makeJPEG writes a width x height JPEG under dir with the given name.
func makeJPEG(t testing.TB, dir, name string, width, height int) string {
	t.Helper()
	return writeFile(t, dir, name, encodeJPEG(t, width, height))
}

// makeGIF writes a width x height GIF under dir with the given name.
func makeGIF(t testing.TB, dir, name string, width, height int) string {
	t.Helper()
	return writeFile(t, dir, name, encodeGIF(t, width, height))
}

// truncatePNG returns PNG bytes with an intact signature and IHDR chunk
// but a broken body: header-level checks pass, a full decode fails.
func truncatePNG(t testing.TB, width, height int) []byte {
	t.Helper()
	data := encodePNG(t, width, height)
	// 8-byte signature + 25-byte IHDR chunk, plus a few bytes of the
	// next chunk so the file is clearly not just a header.
	if len(data) < 48 {
		t.Fatalf("encoded PNG unexpectedly small: %d bytes", len(data))
	}
	return data[:41]
}

func containsString(s, substr string) bool {
	return strings.Contains(s, substr)
}
