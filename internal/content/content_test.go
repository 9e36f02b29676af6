package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	html := RenderMarkdown("## Заголовок\n\nТекст с **акцентом** и [ссылкой](https://example.com).")
	assert.Contains(t, html, "<h2")
	assert.Contains(t, html, "<strong>акцентом</strong>")
	assert.Contains(t, html, `rel="nofollow"`)
	assert.Equal(t, "", RenderMarkdown(""))
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	html := RenderMarkdown("hello <script>alert(1)</script>\n\n<a href=\"javascript:alert(1)\">x</a>")
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "javascript:")
}

func TestBlocksKnown(t *testing.T) {
	assert.Equal(t, []string{"about", "contacts", "facilitator_apply", "footer", "hero", "homepage",
		"placement_cta", "site", "terms"}, Blocks())
}

func TestValidateBlock(t *testing.T) {
	assert.NoError(t, ValidateBlock("hero", []byte(`{"title":"Энергопрактики","cta_text":"Найти"}`)))
	assert.NoError(t, ValidateBlock("site", []byte(`{"site_name":"Энергопрактики","main_facilitators_count":4}`)))
	assert.NoError(t, ValidateBlock("footer", []byte(`{"links":[{"label":"О нас","href":"/about"}]}`)))

	assert.ErrorIs(t, ValidateBlock("hero", []byte(`{"subtitle":"no title"}`)), ErrInvalidBlock)
	assert.ErrorIs(t, ValidateBlock("site", []byte(`{"site_name":"x","main_facilitators_count":-1}`)), ErrInvalidBlock)
	assert.ErrorIs(t, ValidateBlock("contacts", []byte(`{"fax":"123"}`)), ErrInvalidBlock)
	assert.ErrorIs(t, ValidateBlock("hero", []byte(`{not json`)), ErrInvalidBlock)
	assert.ErrorIs(t, ValidateBlock("sidebar", []byte(`{}`)), ErrUnknownBlock)
}
