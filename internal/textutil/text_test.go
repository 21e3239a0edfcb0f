package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/lirajourney/internal/textutil"
)

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "der Thron", textutil.CollapseWhitespace("  der \t\n Thron "))
	assert.Equal(t, "", textutil.CollapseWhitespace("   "))
}

func TestNormalizeHeadword(t *testing.T) {
	assert.Equal(t, "der thron", textutil.NormalizeHeadword(" Der  THRON "))
	assert.Equal(t, "die straße", textutil.NormalizeHeadword("die Straße"))
}

func TestUpperGerman(t *testing.T) {
	assert.Equal(t, "THRON", textutil.UpperGerman("Thron"))
	assert.Equal(t, "STRASSE", textutil.UpperGerman("Straße"))
	assert.Equal(t, "MÄCHTIG", textutil.UpperGerman("mächtig"))
}

func TestEqualFold(t *testing.T) {
	assert.True(t, textutil.EqualFold("Корона", "корона"))
	assert.False(t, textutil.EqualFold("трон", "корона"))
}
