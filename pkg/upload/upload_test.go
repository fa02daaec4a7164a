package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	apperr "github.com/vango-dev/eventconnect/internal/errors"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type countingReporter struct {
	mu      sync.Mutex
	results []Result
}

func (c *countingReporter) UploadFinished(r Result) {
	c.mu.Lock()
	c.results = append(c.results, r)
	c.mu.Unlock()
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxImageBytes != 10*1024*1024 {
		t.Errorf("Expected 10MB limit, got %d", cfg.MaxImageBytes)
	}
	if len(cfg.AllowedTypes) == 0 {
		t.Error("Expected default allowed types")
	}
}

func TestDecodePNG(t *testing.T) {
	rep := &countingReporter{}
	d := NewDecoder(nil, WithReporter(rep))

	uri, err := d.Decode(bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("Expected png data URI, got %q", uri[:30])
	}
	if MediaType(uri) != "image/png" {
		t.Errorf("Expected media type image/png, got %q", MediaType(uri))
	}
	if len(rep.results) != 1 || rep.results[0] != ResultOK {
		t.Errorf("Expected one ok result, got %v", rep.results)
	}
}

func TestDecodeTooLarge(t *testing.T) {
	d := NewDecoder(&Config{MaxImageBytes: 16})

	_, err := d.Decode(bytes.NewReader(append(pngHeader, make([]byte, 64)...)))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("Expected ErrTooLarge, got %v", err)
	}
	if !apperr.HasCode(err, "E301") {
		t.Errorf("Expected code E301, got %v", err)
	}
}

func TestDecodeExactlyAtLimit(t *testing.T) {
	d := NewDecoder(&Config{MaxImageBytes: int64(len(pngHeader))})
	if _, err := d.Decode(bytes.NewReader(pngHeader)); err != nil {
		t.Errorf("Expected file at the limit to pass, got %v", err)
	}
}

func TestDecodeRejectsNonImages(t *testing.T) {
	d := NewDecoder(nil)

	_, err := d.Decode(strings.NewReader("just some text, not a photo"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("Expected ErrUnsupportedType, got %v", err)
	}
	if !apperr.HasCode(err, "E302") {
		t.Errorf("Expected code E302, got %v", err)
	}
}

func TestDecodeCustomAllowList(t *testing.T) {
	d := NewDecoder(&Config{AllowedTypes: []string{"image/jpeg"}})
	if _, err := d.Decode(bytes.NewReader(pngHeader)); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("Expected png to be rejected, got %v", err)
	}
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg") // name is not trusted
	if err := os.WriteFile(path, pngHeader, 0o644); err != nil {
		t.Fatal(err)
	}

	uri, err := NewDecoder(nil).DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if MediaType(uri) != "image/png" {
		t.Errorf("Expected sniffed type image/png, got %q", MediaType(uri))
	}

	if _, err := NewDecoder(nil).DecodeFile(filepath.Join(dir, "missing.png")); !apperr.HasCode(err, "E300") {
		t.Errorf("Expected E300 for missing file, got %v", err)
	}
}

func TestMediaType(t *testing.T) {
	tests := map[string]string{
		"data:image/jpeg;base64,AAAA": "image/jpeg",
		"https://example.com/a.png":   "",
		"data:nobase64":               "",
	}
	for in, want := range tests {
		if got := MediaType(in); got != want {
			t.Errorf("MediaType(%q) = %q, want %q", in, got, want)
		}
	}
}

type gatedReader struct {
	gate chan struct{}
	r    io.Reader
}

func (g *gatedReader) Read(p []byte) (int, error) {
	<-g.gate
	return g.r.Read(p)
}

func TestLoaderLatestWins(t *testing.T) {
	rep := &countingReporter{}
	l := NewLoader(NewDecoder(nil, WithReporter(rep)))

	var mu sync.Mutex
	var applied []string
	apply := func(uri string) {
		mu.Lock()
		applied = append(applied, uri)
		mu.Unlock()
	}

	slow := &gatedReader{gate: make(chan struct{}), r: bytes.NewReader([]byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"))}
	l.Load(context.Background(), slow, apply, nil)
	l.Load(context.Background(), bytes.NewReader(pngHeader), apply, nil)

	close(slow.gate)
	l.Wait()

	if len(applied) != 1 || MediaType(applied[0]) != "image/png" {
		t.Errorf("Expected only the latest upload to apply, got %v", applied)
	}
	var stale int
	for _, r := range rep.results {
		if r == ResultStale {
			stale++
		}
	}
	if stale != 1 {
		t.Errorf("Expected one stale result, got %v", rep.results)
	}
	if len(rep.results) != 2 {
		t.Errorf("Expected one result per upload, got %v", rep.results)
	}
}

func TestLoaderStaleCountedOnce(t *testing.T) {
	rep := &countingReporter{}
	l := NewLoader(NewDecoder(nil, WithReporter(rep)))

	g := &gatedReader{gate: make(chan struct{}), r: bytes.NewReader(pngHeader)}
	l.Load(context.Background(), g, func(string) {}, nil)
	l.Cancel()
	close(g.gate)
	l.Wait()

	if len(rep.results) != 1 || rep.results[0] != ResultStale {
		t.Errorf("Expected a single stale result, got %v", rep.results)
	}
}

func TestLoaderReportsFailure(t *testing.T) {
	l := NewLoader(NewDecoder(nil))
	var got error
	l.Load(context.Background(), strings.NewReader("text"), func(string) {
		t.Error("apply must not run for a rejected file")
	}, func(err error) { got = err })
	l.Wait()

	if !errors.Is(got, ErrUnsupportedType) {
		t.Errorf("Expected ErrUnsupportedType, got %v", got)
	}
}

func TestLoaderCancel(t *testing.T) {
	l := NewLoader(NewDecoder(nil))
	g := &gatedReader{gate: make(chan struct{}), r: bytes.NewReader(pngHeader)}
	l.Load(context.Background(), g, func(string) {
		t.Error("cancelled upload must not apply")
	}, nil)
	l.Cancel()
	close(g.gate)
	l.Wait()
}

func TestLoaderContextCancelled(t *testing.T) {
	l := NewLoader(NewDecoder(nil))
	ctx, cancel := context.WithCancel(context.Background())
	g := &gatedReader{gate: make(chan struct{}), r: bytes.NewReader(pngHeader)}
	l.Load(ctx, g, func(string) {
		t.Error("upload for a torn down view must not apply")
	}, nil)
	cancel()
	close(g.gate)
	l.Wait()
}
