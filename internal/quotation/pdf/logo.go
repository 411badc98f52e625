package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
)

// maxLogoBytes caps how much image data is read from the logo URL.
const maxLogoBytes = 8 << 20

// logoImage is a fetched and format-verified branding image ready to
// embed.
type logoImage struct {
	data      []byte
	imageType string
}

// fetchLogo downloads and decodes the profile logo. Callers fall back
// to text branding on any error.
func fetchLogo(ctx context.Context, client *http.Client, url string) (*logoImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build logo request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch logo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch logo: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
	if err != nil {
		return nil, fmt.Errorf("read logo body: %w", err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}

	var imageType string
	switch format {
	case "png":
		imageType = "PNG"
	case "jpeg":
		imageType = "JPG"
	default:
		return nil, fmt.Errorf("decode logo: unsupported format %q", format)
	}

	return &logoImage{data: data, imageType: imageType}, nil
}
