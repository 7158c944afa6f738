package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	t.Run("passes plain text through", func(t *testing.T) {
		require.Equal(t, "Acme Labs S.A.C.", SanitizeText("Acme Labs S.A.C."))
	})

	t.Run("keeps comparison characters that are not markup", func(t *testing.T) {
		require.Equal(t, "5 < 6 and 7 > 2", SanitizeText("5 < 6 and 7 > 2"))
	})

	t.Run("drops script bodies entirely", func(t *testing.T) {
		require.Equal(t, "hello", SanitizeText(`hello<script>alert("x")</script>`))
		require.Equal(t, "hello", SanitizeText(`hello<style>body{display:none}</style>`))
	})

	t.Run("strips tags but keeps their text content", func(t *testing.T) {
		require.Equal(t, "bold and em", SanitizeText("<b>bold</b> and <em>em</em>"))
		require.Equal(t, "link", SanitizeText(`<a href="https://evil.example">link</a>`))
	})

	t.Run("removes comments", func(t *testing.T) {
		require.Equal(t, "before  after", SanitizeText("before <!-- hidden --> after"))
	})

	t.Run("does not let stripping reassemble a tag", func(t *testing.T) {
		out := SanitizeText("<scr<script></script>ipt>alert(1)</scr</script>ipt>")
		require.NotContains(t, out, "<script>")
		require.Equal(t, out, SanitizeText(out))
	})

	t.Run("is idempotent", func(t *testing.T) {
		for _, input := range []string{
			"  padded  ",
			"<div>nested <span>content</span></div>",
			"plain",
			"a < b",
		} {
			once := SanitizeText(input)
			require.Equal(t, once, SanitizeText(once))
		}
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		require.Equal(t, "text", SanitizeText("  <p>text</p>\n"))
	})
}

func TestSanitizeTextPtr(t *testing.T) {
	t.Parallel()

	require.Nil(t, SanitizeTextPtr(nil))

	input := " <b>note</b> "
	out := SanitizeTextPtr(&input)
	require.NotNil(t, out)
	require.Equal(t, "note", *out)
}
