package upload

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	apperr "github.com/vango-dev/eventconnect/internal/errors"
)

// ErrTooLarge is returned when a file exceeds the size limit.
var ErrTooLarge = errors.New("upload: file too large")

// ErrUnsupportedType is returned when the detected type is not allowed.
var ErrUnsupportedType = errors.New("upload: unsupported file type")

// Config holds the decoder limits.
type Config struct {
	// MaxImageBytes is the maximum allowed file size in bytes.
	// Default: 10MB.
	MaxImageBytes int64

	// AllowedTypes lists the accepted MIME types.
	// Default: image/png, image/jpeg, image/gif, image/webp.
	AllowedTypes []string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxImageBytes: 10 * 1024 * 1024, // 10MB
		AllowedTypes:  []string{"image/png", "image/jpeg", "image/gif", "image/webp"},
	}
}

// Result reports the outcome of one decode to a Reporter.
type Result string

const (
	ResultOK          Result = "ok"
	ResultTooLarge    Result = "too_large"
	ResultUnsupported Result = "unsupported"
	ResultError       Result = "error"
	ResultStale       Result = "stale"
)

// Reporter is notified of every decode outcome.
type Reporter interface {
	UploadFinished(result Result)
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(d *Decoder) {
		d.logger = l
	}
}

// WithReporter sets the outcome reporter.
func WithReporter(r Reporter) Option {
	return func(d *Decoder) {
		d.reporter = r
	}
}

// Decoder converts image files into data URIs.
type Decoder struct {
	maxBytes int64
	allowed  map[string]bool
	logger   *slog.Logger
	reporter Reporter
}

// NewDecoder creates a Decoder. A nil config means DefaultConfig.
func NewDecoder(cfg *Config, opts ...Option) *Decoder {
	def := DefaultConfig()
	if cfg == nil {
		cfg = def
	}
	maxBytes := cfg.MaxImageBytes
	if maxBytes <= 0 {
		maxBytes = def.MaxImageBytes
	}
	types := cfg.AllowedTypes
	if len(types) == 0 {
		types = def.AllowedTypes
	}

	d := &Decoder{
		maxBytes: maxBytes,
		allowed:  make(map[string]bool, len(types)),
		logger:   slog.Default(),
	}
	for _, t := range types {
		d.allowed[strings.ToLower(strings.TrimSpace(t))] = true
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// MaxBytes returns the effective size limit.
func (d *Decoder) MaxBytes() int64 {
	return d.maxBytes
}

// Decode reads r and returns a data URI.
func (d *Decoder) Decode(r io.Reader) (string, error) {
	uri, res, err := d.decode(r)
	d.report(res)
	return uri, err
}

// decode is Decode without reporting; the caller reports res.
func (d *Decoder) decode(r io.Reader) (string, Result, error) {
	// SECURITY: read at most one byte past the limit so oversized input is
	// detected without buffering all of it.
	data, err := io.ReadAll(io.LimitReader(r, d.maxBytes+1))
	if err != nil {
		return "", ResultError, apperr.New("E300").Wrap(err)
	}
	if int64(len(data)) > d.maxBytes {
		return "", ResultTooLarge, apperr.New("E301").
			WithDetailf("limit is %d bytes", d.maxBytes).
			Wrap(ErrTooLarge)
	}

	mime := mimetype.Detect(data)
	base := strings.ToLower(strings.SplitN(mime.String(), ";", 2)[0])
	if !d.allowed[base] {
		return "", ResultUnsupported, apperr.New("E302").
			WithDetailf("detected %s", base).
			Wrap(ErrUnsupportedType)
	}

	var buf bytes.Buffer
	buf.Grow(len("data:;base64,") + len(base) + base64.StdEncoding.EncodedLen(len(data)))
	buf.WriteString("data:")
	buf.WriteString(base)
	buf.WriteString(";base64,")
	buf.WriteString(base64.StdEncoding.EncodeToString(data))

	d.logger.Debug("image decoded", "type", base, "bytes", len(data))
	return buf.String(), ResultOK, nil
}

// DecodeFile opens path and decodes it.
func (d *Decoder) DecodeFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		d.report(ResultError)
		return "", apperr.New("E300").WithDetail(path).Wrap(err)
	}
	defer f.Close()
	return d.Decode(f)
}

func (d *Decoder) report(r Result) {
	if d.reporter != nil {
		d.reporter.UploadFinished(r)
	}
}

// MediaType returns the MIME type of a data URI, or "" if uri is not one.
func MediaType(uri string) string {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return ""
	}
	mt, _, ok := strings.Cut(rest, ";")
	if !ok {
		return ""
	}
	return mt
}
