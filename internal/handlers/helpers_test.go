package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAvatarUpdate(t *testing.T) {
	_, set := avatarUpdate(nil)
	assert.False(t, set)

	img, set := avatarUpdate(json.RawMessage("null"))
	assert.True(t, set)
	assert.True(t, img.IsZero())

	img, set = avatarUpdate(json.RawMessage(`"data:image/png;base64,iVBORw0KGgo="`))
	assert.True(t, set)
	assert.Equal(t, "image/png", img.ContentType)

	_, set = avatarUpdate(json.RawMessage(`"lixo"`))
	assert.False(t, set)
}

func TestQueryBool(t *testing.T) {
	cases := map[string]*bool{
		"/?lido=true":   ptr(true),
		"/?lido=false":  ptr(false),
		"/?lido=talvez": nil,
		"/":             nil,
	}
	for url, want := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", url, nil)
		assert.Equal(t, want, queryBool(c, "lido"), url)
	}
}

func TestTrimmed(t *testing.T) {
	assert.Equal(t, "", trimmed(nil))
	assert.Equal(t, "abc", trimmed(ptr("  abc ")))
}

func ptr[T any](v T) *T {
	return &v
}

func TestContainsPatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%acme%", containsPattern("acme"))
	assert.Equal(t, "%a!_b%", containsPattern("a_b"))
	assert.Equal(t, "%!%%", containsPattern("%"))
	assert.Equal(t, "%x!!y%", containsPattern("x!y"))
}
