// Package media converts images between their transport form (data URL or
// {data, contentType} object) and the stored form (bytes + content type).
package media

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var dataURLPattern = regexp.MustCompile(`(?s)^data:([^,]+?);base64,(.+)$`)

// Image is the stored representation. It always serializes back to a data URL,
// so raw bytes never leave the API.
type Image struct {
	Data        []byte `gorm:"column:data"`
	ContentType string `gorm:"column:content_type;size:100"`
}

func (i Image) IsZero() bool {
	return len(i.Data) == 0
}

type objectForm struct {
	Data        string `json:"data"`
	ContentType string `json:"contentType"`
	Filename    string `json:"filename"`
}

// Decode accepts a data URL string or a {data, contentType} object. ok is
// false when raw matches neither shape, which callers treat as "no image".
func Decode(raw json.RawMessage) (Image, bool) {
	img, _, ok := decode(raw)
	return img, ok
}

func decode(raw json.RawMessage) (Image, string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Image{}, "", false
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Image{}, "", false
		}
		img, ok := DecodeDataURL(s)
		return img, "", ok
	case '{':
		var obj objectForm
		if err := json.Unmarshal(raw, &obj); err != nil {
			return Image{}, "", false
		}
		if strings.HasPrefix(obj.Data, "data:") {
			img, ok := DecodeDataURL(obj.Data)
			return img, obj.Filename, ok
		}
		data, ok := decodeBase64(obj.Data)
		if !ok {
			return Image{}, "", false
		}
		ct := normalizeContentType(obj.ContentType)
		if ct == "" {
			ct = sniff(data)
		}
		return Image{Data: data, ContentType: ct}, obj.Filename, true
	default:
		return Image{}, "", false
	}
}

func DecodeDataURL(s string) (Image, bool) {
	m := dataURLPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Image{}, false
	}
	data, ok := decodeBase64(m[2])
	if !ok {
		return Image{}, false
	}
	return Image{Data: data, ContentType: strings.TrimSpace(m[1])}, true
}

// Encode is the inverse of Decode. ok is false for an empty image.
func Encode(img Image) (string, bool) {
	if img.IsZero() {
		return "", false
	}
	ct := img.ContentType
	if ct == "" {
		ct = sniff(img.Data)
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(img.Data), true
}

func (i Image) MarshalJSON() ([]byte, error) {
	s, ok := Encode(i)
	if !ok {
		return []byte("null"), nil
	}
	return json.Marshal(s)
}

// UnmarshalJSON never fails: unrecognised input leaves the image empty.
func (i *Image) UnmarshalJSON(b []byte) error {
	img, _ := Decode(b)
	*i = img
	return nil
}

func decodeBase64(s string) ([]byte, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil && len(b) > 0 {
		return b, true
	}
	if b, err := base64.RawStdEncoding.DecodeString(s); err == nil && len(b) > 0 {
		return b, true
	}
	return nil, false
}

func normalizeContentType(ct string) string {
	ct = strings.TrimSpace(ct)
	if ct == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return mt
	}
	return ct
}

func sniff(data []byte) string {
	return normalizeContentType(mimetype.Detect(data).String())
}
