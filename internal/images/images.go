package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"io"
	"log"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	LocalScheme = "local://images/"
	KeyPrefix   = "tour_image_"
	Placeholder = "/static/img/placeholder.svg"

	DefaultMaxDimension = 1200

	// MaxUploadBytes caps the encoded upload; MaxSourcePixels caps the
	// decoded bitmap.
	MaxUploadBytes  = 8 << 20
	MaxSourcePixels = 40_000_000
)

var (
	ErrEmptyID       = errors.New("image id is required")
	ErrTooLarge      = errors.New("image file is too large")
	ErrTooManyPixels = errors.New("image dimensions are too large")
)

type KV interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context, keys ...string) error
}

// Store keeps admin-uploaded tour images as base64 JPEG blobs addressed by
// local://images/{id} URLs.
type Store struct {
	kv     KV
	maxDim int
}

func NewStore(kv KV, maxDim int) *Store {
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}
	return &Store{kv: kv, maxDim: maxDim}
}

// Save decodes any supported image, shrinks it to fit maxDim and returns its
// pseudo-URL.
func (s *Store) Save(ctx context.Context, id string, r io.Reader) (string, error) {
	if id == "" {
		return "", ErrEmptyID
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxUploadBytes {
		return "", ErrTooLarge
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > MaxSourcePixels {
		return "", ErrTooManyPixels
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", err
	}

	b := img.Bounds()
	if b.Dx() > s.maxDim || b.Dy() > s.maxDim {
		img = imaging.Fit(img, s.maxDim, s.maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(82)); err != nil {
		return "", err
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	if err := s.kv.Set(ctx, KeyPrefix+id, encoded); err != nil {
		return "", err
	}
	return LocalScheme + id, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.kv.Clear(ctx, KeyPrefix+id)
}

// Resolve turns a tour image URL into something a browser can load. Missing
// local images fall back to the placeholder.
func (s *Store) Resolve(ctx context.Context, url string) string {
	if url == "" {
		return Placeholder
	}
	if !IsLocal(url) {
		return url
	}

	id := strings.TrimPrefix(url, LocalScheme)
	data, ok := s.kv.Get(ctx, KeyPrefix+id)
	if !ok || data == "" {
		log.Printf("Local image %s not found, using placeholder", id)
		return Placeholder
	}
	return "data:image/jpeg;base64," + data
}

func IsLocal(url string) bool {
	return strings.HasPrefix(url, LocalScheme)
}
