package media

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func quoted(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	images := []Image{
		{Data: pngHeader, ContentType: "image/png"},
		{Data: []byte{0xff, 0xd8, 0xff, 0xe0, 0x01}, ContentType: "image/jpeg"},
		{Data: []byte("plain text"), ContentType: "text/plain"},
		{Data: []byte{0x00}, ContentType: "application/x-custom"},
		{Data: []byte("<svg/>"), ContentType: "image/svg+xml; charset=utf-8"},
		{Data: []byte("a,b"), ContentType: "text/csv;header=present"},
	}

	for _, img := range images {
		encoded, ok := Encode(img)
		require.True(t, ok)

		decoded, ok := Decode(quoted(encoded))
		require.True(t, ok, encoded)
		assert.Equal(t, img, decoded)
	}
}

func TestDecodeObjectForm(t *testing.T) {
	raw := json.RawMessage(`{"data":"aGVsbG8=","contentType":"image/webp"}`)

	img, ok := Decode(raw)
	require.True(t, ok)
	assert.Equal(t, []byte("hello"), img.Data)
	assert.Equal(t, "image/webp", img.ContentType)
}

func TestDecodeObjectFormSniffsMissingContentType(t *testing.T) {
	raw := json.RawMessage(fmt.Sprintf(`{"data":%q}`, mustEncode(t, Image{Data: pngHeader, ContentType: "x"})[len("data:x;base64,"):]))

	img, ok := Decode(raw)
	require.True(t, ok)
	assert.Equal(t, "image/png", img.ContentType)
}

func TestDecodeRejectsUnknownShapes(t *testing.T) {
	for _, raw := range []string{
		``,
		`null`,
		`42`,
		`[]`,
		`"not a data url"`,
		`"data:image/png;base64,"`,
		`"data:image/png;base64,@@@"`,
		`{"contentType":"image/png"}`,
		`{"data":"%%%"}`,
	} {
		_, ok := Decode(json.RawMessage(raw))
		assert.False(t, ok, raw)
	}
}

func TestMarshalJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Avatar Image `json:"avatar"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"avatar":null}`, string(b))

	b, err = json.Marshal(Image{Data: []byte("hello"), ContentType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, `"data:image/png;base64,aGVsbG8="`, string(b))

	var back Image
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "image/png", back.ContentType)
}

func TestDecodeAllTruncates(t *testing.T) {
	raws := make([]json.RawMessage, 0, 12)
	for i := range 12 {
		raws = append(raws, quoted(mustEncode(t, Image{Data: []byte{byte(i + 1)}, ContentType: "image/png"})))
	}
	raws = append([]json.RawMessage{json.RawMessage(`"lixo"`)}, raws...)

	out := DecodeAll(raws, 10)
	require.Len(t, out, 10)
	assert.Equal(t, []byte{1}, out[0].Data)
}

func TestDecodeAttachmentKeepsFilename(t *testing.T) {
	a, ok := DecodeAttachment(json.RawMessage(`{"data":"data:application/pdf;base64,JVBERi0=","filename":" contrato.pdf "}`))
	require.True(t, ok)
	assert.Equal(t, "contrato.pdf", a.Filename)
	assert.Equal(t, "application/pdf", a.Image.ContentType)
}

func mustEncode(t *testing.T, img Image) string {
	t.Helper()
	s, ok := Encode(img)
	require.True(t, ok)
	return s
}
