package readability_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/cdpsupport"
	"github.com/fwojciec/cdpsupport/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.Extract("")

	require.Error(t, err)
	assert.Equal(t, cdpsupport.EINVALID, cdpsupport.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Page Title</title></head>
<body><article><p>Content</p></article></body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "Page Title", result.Title)
}

func TestExtractor_RemovesNavigation(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article><p>This is the main article content that should be preserved in the output.</p></article>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.NotContains(t, result.Content, "Home Nav Link")
	assert.NotContains(t, result.Content, "About Nav Link")
}

func TestExtractor_ReturnsPlainText(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/home">Home</a></nav>
<article>
<h1>Identity Resolution</h1>
<p>This is the important article paragraph text that must be kept.</p>
<p>Use the <code>identify</code> call to merge profiles.</p>
</article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.Content, "important article paragraph text")
	assert.Contains(t, result.Content, "identify")
	assert.NotContains(t, result.Content, "<p")
	assert.NotContains(t, result.Content, "Footer copyright text")
}

func TestExtractor_TruncatesContent(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body><article><p>` + strings.Repeat("segment ", cdpsupport.MaxContentLength) + `</p></article></body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Len(t, []rune(result.Content), cdpsupport.MaxContentLength)
}
