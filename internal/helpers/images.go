package helpers

import (
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/spotlight/internal/discovery"
)

// ImageResolver turns stored image references into URLs the client can load.
// Absolute URLs and local paths pass through; bare names are treated as
// Cloudinary public ids when a Cloudinary account is configured.
type ImageResolver struct {
	cld *cloudinary.Cloudinary
}

func NewImageResolver(cld *cloudinary.Cloudinary) *ImageResolver {
	return &ImageResolver{cld: cld}
}

func (r *ImageResolver) Resolve(image string) string {
	image = strings.TrimSpace(image)
	if image == "" {
		return discovery.PlaceholderImage
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") || strings.HasPrefix(image, "/") {
		return image
	}
	if r == nil || r.cld == nil {
		return image
	}

	asset, err := r.cld.Image(image)
	if err != nil {
		return image
	}
	url, err := asset.String()
	if err != nil || url == "" {
		return image
	}
	return url
}

// ResolveRecord applies display defaults and resolves the image of r.
func (r *ImageResolver) ResolveRecord(rec discovery.Record) discovery.Record {
	rec.Image = r.Resolve(rec.Image)
	return rec.WithDefaults()
}
