package media

import (
	"encoding/json"
	"strings"
)

// Attachment is a named file. Filename is optional on input.
type Attachment struct {
	Filename string
	Image    Image
}

func DecodeAttachment(raw json.RawMessage) (Attachment, bool) {
	img, filename, ok := decode(raw)
	if !ok {
		return Attachment{}, false
	}
	return Attachment{Filename: strings.TrimSpace(filename), Image: img}, true
}

// DecodeAll decodes each entry, skips the ones that carry no image and stops
// once max items were collected.
func DecodeAll(raws []json.RawMessage, max int) []Image {
	out := make([]Image, 0, min(len(raws), max))
	for _, raw := range raws {
		if len(out) == max {
			break
		}
		if img, ok := Decode(raw); ok {
			out = append(out, img)
		}
	}
	return out
}

func DecodeAllAttachments(raws []json.RawMessage, max int) []Attachment {
	out := make([]Attachment, 0, min(len(raws), max))
	for _, raw := range raws {
		if len(out) == max {
			break
		}
		if a, ok := DecodeAttachment(raw); ok {
			out = append(out, a)
		}
	}
	return out
}
