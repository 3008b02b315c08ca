// Package storage keeps uploaded recipe images and avatars. Payloads arrive
// as base64 (optionally a data URI), are normalized with imaging and then
// handed to an ImageStore backend.
package storage

import (
	"bytes"           // Byte buffers
	"context"         // Request-scoped cancellation
	"encoding/base64" // Data URL payloads
	"errors"          // Error inspection
	"fmt"             // String formatting
	"image"           // Image headers
	"strings"         // String helpers

	"github.com/disintegration/imaging" // Image decoding and resizing
	"github.com/google/uuid"            // Random file names
)

// Upload limits. MaxSide bounds both dimensions of a stored image; larger
// images are scaled down. Payloads over MaxPayloadLen base64 characters or
// sources over MaxPixels pixels are rejected before decoding.
const (
	MaxSide       = 1024
	MaxPayloadLen = 14 << 20 // about 10 MiB of image data
	MaxPixels     = 40_000_000
)

var ErrInvalidImage = errors.New("upload a valid image")

// ImageStore persists encoded images under a key and resolves public URLs.
type ImageStore interface {
	Save(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// Image is a decoded and re-encoded upload.
type Image struct {
	Data        []byte
	Ext         string
	ContentType string
}

// DecodeImage parses a base64 payload, shrinks it to fit MaxSide and
// re-encodes it. PNG and GIF input stays PNG; everything else becomes JPEG.
func DecodeImage(payload string) (*Image, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, ErrInvalidImage
	}
	if strings.HasPrefix(payload, "data:") {
		_, data, ok := strings.Cut(payload, ";base64,")
		if !ok {
			return nil, ErrInvalidImage
		}
		payload = data
	}
	if len(payload) > MaxPayloadLen {
		return nil, fmt.Errorf("%w: payload exceeds %d bytes", ErrInvalidImage, MaxPayloadLen)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	// dimensions come from the header alone
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidImage, cfg.Width, cfg.Height, MaxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	b := img.Bounds()
	if b.Dx() > MaxSide || b.Dy() > MaxSide {
		img = imaging.Fit(img, MaxSide, MaxSide, imaging.Lanczos)
	}

	out := &Image{Ext: "jpg", ContentType: "image/jpeg"}
	target := imaging.JPEG
	if format == "png" || format == "gif" {
		out.Ext, out.ContentType, target = "png", "image/png", imaging.PNG
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, target, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	out.Data = buf.Bytes()
	return out, nil
}

// Upload decodes payload and saves it under prefix with a random name,
// returning the new key.
func Upload(ctx context.Context, store ImageStore, prefix, payload string) (string, error) {
	img, err := DecodeImage(payload)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%s.%s", strings.Trim(prefix, "/"), uuid.NewString(), img.Ext)
	if err := store.Save(ctx, key, img.Data, img.ContentType); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return key, nil
}
