package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogsLoad(t *testing.T) {
	require.NoError(t, Initialize())
	assert.Equal(t, []string{"en", "id"}, GetSupportedLanguages())
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, "Invalid credentials", T("en", KeyAuthInvalidCredentials))
	assert.Equal(t, "Produk tidak ditemukan", T("id", KeyProductNotFound))
	assert.Equal(t, "File exceeds the 80 MB limit", T("en", KeyUploadTooLarge, 80))
	assert.Equal(t, "Category already exists", T("fr", KeyCategoryExists))
	assert.Equal(t, "no.such.key", T("en", "no.such.key"))
}

func TestCatalogsShareKeys(t *testing.T) {
	require.NoError(t, Initialize())
	en := instance.translations["en"]
	id := instance.translations["id"]
	for key := range en {
		assert.Contains(t, id, key)
	}
	assert.Len(t, id, len(en))
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("id"))
	assert.False(t, Supported("zh_TW"))
}
