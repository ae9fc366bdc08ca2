package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravatarURL(t *testing.T) {
	// md5("a@x.com") = 743173788aa9166801df2e18f0e7ff24
	got := GravatarURL("a@x.com")
	assert.Equal(t, "https://www.gravatar.com/avatar/743173788aa9166801df2e18f0e7ff24?s=250&r=pg&d=retro", got)
}

func TestGravatarURL_NormalizesInput(t *testing.T) {
	base := GravatarURL("a@x.com")
	assert.Equal(t, base, GravatarURL("  A@X.COM  "))
	assert.NotEqual(t, base, GravatarURL("b@x.com"))
}
