package wizard

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	noticeImageTooLarge = "Image must be smaller than 5MB"
	noticeNotAnImage    = "Please choose an image file"
	noticeEmptyImage    = "The selected file is empty"
)

// decodeImage validates a selected file and returns either the image or a
// notice explaining why it was rejected.
func decodeImage(cfg Config, name string, data []byte) (Image, string) {
	limit := cfg.MaxImage
	if limit <= 0 {
		limit = MaxImageBytes
	}
	if int64(len(data)) > limit {
		return Image{}, noticeImageTooLarge
	}
	if len(data) == 0 {
		return Image{}, noticeEmptyImage
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return Image{}, noticeNotAnImage
	}

	img := Image{
		Name: name,
		MIME: mtype.String(),
		Data: append([]byte(nil), data...),
	}
	// Formats without a registered decoder (webp, heic) keep zero dimensions.
	if conf, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		img.Width = conf.Width
		img.Height = conf.Height
	}
	return img, ""
}
