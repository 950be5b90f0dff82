package extract_test

import (
	"strings"
	"testing"

	"github.com/apimap/apimap"
	"github.com/apimap/apimap/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract_method_path(t *testing.T) {
	t.Parallel()

	e := extract.NewExtractor()
	records := e.Extract("GET /v1/users returns a list", "https://api.x.com")

	require.Len(t, records, 1)
	assert.Equal(t, "GET", records[0].Method)
	assert.Equal(t, "/v1/users", records[0].Path)
	assert.Equal(t, "https://api.x.com/v1/users", records[0].FullURL)
	assert.Equal(t, apimap.ProvenanceMethodPath, records[0].Source)
}

func TestExtractor_Extract_curl_with_method_flag(t *testing.T) {
	t.Parallel()

	e := extract.NewExtractor()
	records := e.Extract(`curl -X POST "https://api.x.com/v1/items"`, "https://api.x.com")

	require.NotEmpty(t, records)
	assert.Equal(t, "POST", records[0].Method)
	assert.Equal(t, "/v1/items", records[0].Path)
}

func TestExtractor_Extract_first_matcher_claims_key(t *testing.T) {
	t.Parallel()

	// Both the method+path matcher and the API-path matcher see /v1/users;
	// the earlier matcher wins the key for this page.
	e := extract.NewExtractor()
	records := e.Extract("GET /v1/users lists users", "https://api.x.com")

	require.Len(t, records, 1)
	assert.Equal(t, apimap.ProvenanceMethodPath, records[0].Source)
}

func TestExtractor_Extract_is_deterministic(t *testing.T) {
	t.Parallel()

	text := "GET /v1/users and POST /v1/users and see `/v1/items/{id}` " +
		`or curl -X DELETE "https://api.x.com/v1/items/1" and /api/keys`
	e := extract.NewExtractor()

	first := e.Extract(text, "https://api.x.com")
	second := e.Extract(text, "https://api.x.com")

	assert.Equal(t, first, second)
}

func TestExtractor_Extract_all_paths_valid(t *testing.T) {
	t.Parallel()

	text := "GET / and GET /v1/users, visit https://x.com/docs or " +
		"`/` or `/v2/a` or curl https://x.com/a /api/things done"
	e := extract.NewExtractor()

	for _, rec := range e.Extract(text, "https://api.x.com") {
		assert.True(t, strings.HasPrefix(rec.Path, "/"), "path %q must start with /", rec.Path)
		assert.Greater(t, len(rec.Path), 1, "path %q must be longer than /", rec.Path)
	}
}

func TestExtractor_Extract_empty_text_yields_nothing(t *testing.T) {
	t.Parallel()

	e := extract.NewExtractor()
	assert.Empty(t, e.Extract("", "https://api.x.com"))
	assert.Empty(t, e.Extract("plain prose with no endpoints at all", "https://api.x.com"))
}
