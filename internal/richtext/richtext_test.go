package richtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKeepsEditorFormats(t *testing.T) {
	in := `<h2 class="ql-align-center">Title</h2><p><strong>bold</strong> <em>it</em> <u>u</u> <s>s</s></p>` +
		`<ol><li>one</li></ol><ul><li>two</li></ul><pre><code>x := 1</code></pre>`
	assert.Equal(t, in, Sanitize(in))
}

func TestSanitizeStripsScriptsAndHandlers(t *testing.T) {
	in := `<p onclick="steal()">hi<script>alert(1)</script></p><style>p{}</style>`
	assert.Equal(t, `<p>hi</p>`, Sanitize(in))
}

func TestSanitizeUnwrapsUnknownTags(t *testing.T) {
	assert.Equal(t, `<p>keep me</p>`, Sanitize(`<div><p><span>keep me</span></p></div>`))
}

func TestSanitizeLinksAndImages(t *testing.T) {
	got := Sanitize(`<a href="javascript:alert(1)">x</a><a href="https://go.dev">go</a>`)
	assert.Equal(t, `<a>x</a><a href="https://go.dev" rel="nofollow noopener">go</a>`, got)

	got = Sanitize(`<img src="data:image/png;base64,AAA"><img src="https://img.example/a.png" alt="a" onerror="x()">`)
	assert.Equal(t, `<img src="https://img.example/a.png" alt="a">`, got)
}

func TestSanitizeEscapesText(t *testing.T) {
	assert.Equal(t, `<p>a &lt; b &amp;&amp; c</p>`, Sanitize(`<p>a &lt; b &amp;&amp; c</p>`))
}

func TestSanitizeDropsDisallowedClass(t *testing.T) {
	assert.Equal(t, `<p>x</p>`, Sanitize(`<p class="evil">x</p>`))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   "))
	assert.True(t, IsBlank("<p><br></p>"))
	assert.True(t, IsBlank("<p>  </p><p><br></p>"))
	assert.False(t, IsBlank("<p>hello</p>"))
	assert.False(t, IsBlank(`<p><img src="https://img.example/a.png"></p>`))
	assert.True(t, IsBlank(`<p><img src="javascript:x"></p>`))
}

func TestExcerpt(t *testing.T) {
	md := "<p>I'm building a React application with <strong>TypeScript</strong> and need auth.</p>"
	assert.Equal(t, "I'm building a React application with TypeScript and need auth.", Excerpt(md, 200))

	short := Excerpt(md, 20)
	assert.True(t, strings.HasSuffix(short, "..."))
	assert.LessOrEqual(t, len([]rune(short)), 23)
	assert.Equal(t, "I'm building a React...", short)
}
