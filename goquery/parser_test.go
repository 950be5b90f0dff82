package goquery_test

import (
	"testing"

	apimapgoquery "github.com/apimap/apimap/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse_strips_non_content_markup(t *testing.T) {
	t.Parallel()

	html := `<html><head>
		<meta name="description" content="/v1/meta-noise">
		<link rel="stylesheet" href="/style.css">
		<style>.x { content: "/v1/style-noise"; }</style>
	</head><body>
		<script>fetch("/v1/script-noise")</script>
		<p>GET /v1/users returns a list</p>
	</body></html>`

	p := apimapgoquery.NewParser()
	text, _, err := p.Parse(html, "https://api.x.com/docs")
	require.NoError(t, err)

	assert.Contains(t, text, "GET /v1/users returns a list")
	assert.NotContains(t, text, "script-noise")
	assert.NotContains(t, text, "style-noise")
}

func TestParser_Parse_flattens_text_with_single_spaces(t *testing.T) {
	t.Parallel()

	html := "<body><h1>Users\n</h1><p>  List   users </p><span>here</span></body>"

	p := apimapgoquery.NewParser()
	text, _, err := p.Parse(html, "https://api.x.com/docs")
	require.NoError(t, err)

	assert.Equal(t, "Users List users here", text)
}

func TestParser_Parse_links(t *testing.T) {
	t.Parallel()

	p := apimapgoquery.NewParser()

	t.Run("resolves relative links against the page URL", func(t *testing.T) {
		t.Parallel()

		html := `<body><a href="/docs/users">Users</a><a href="auth">Auth</a></body>`
		_, links, err := p.Parse(html, "https://api.x.com/docs/")
		require.NoError(t, err)

		assert.Equal(t, []string{
			"https://api.x.com/docs/users",
			"https://api.x.com/docs/auth",
		}, links)
	})

	t.Run("drops cross-domain links", func(t *testing.T) {
		t.Parallel()

		html := `<body>
			<a href="https://api.x.com/docs/a">same</a>
			<a href="https://other.example.com/docs">other</a>
		</body>`
		_, links, err := p.Parse(html, "https://api.x.com/docs")
		require.NoError(t, err)

		assert.Equal(t, []string{"https://api.x.com/docs/a"}, links)
	})

	t.Run("collapses duplicates and anchor variants", func(t *testing.T) {
		t.Parallel()

		html := `<body>
			<a href="/docs/a">one</a>
			<a href="/docs/a">two</a>
			<a href="/docs/a#section">three</a>
		</body>`
		_, links, err := p.Parse(html, "https://api.x.com/docs")
		require.NoError(t, err)

		assert.Equal(t, []string{"https://api.x.com/docs/a"}, links)
	})

	t.Run("skips javascript and mailto links", func(t *testing.T) {
		t.Parallel()

		html := `<body>
			<a href="javascript:void(0)">js</a>
			<a href="mailto:dev@example.com">mail</a>
			<a href="/docs/ok">ok</a>
		</body>`
		_, links, err := p.Parse(html, "https://api.x.com/docs")
		require.NoError(t, err)

		assert.Equal(t, []string{"https://api.x.com/docs/ok"}, links)
	})

	t.Run("keeps self links", func(t *testing.T) {
		t.Parallel()

		html := `<body><a href="https://api.x.com/docs">self</a></body>`
		_, links, err := p.Parse(html, "https://api.x.com/docs")
		require.NoError(t, err)

		assert.Equal(t, []string{"https://api.x.com/docs"}, links)
	})
}

func TestParser_Parse_empty_html(t *testing.T) {
	t.Parallel()

	p := apimapgoquery.NewParser()
	text, links, err := p.Parse("", "https://api.x.com/docs")
	require.NoError(t, err)

	assert.Empty(t, text)
	assert.Empty(t, links)
}
