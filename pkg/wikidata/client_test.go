package wikidata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagus/canto-bench/pkg/logging"
	"github.com/tagus/canto-bench/pkg/retry"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, options ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	base := []Option{
		WithAPIURL(server.URL + "/w/api.php"),
		WithEntityDataURL(server.URL + "/wiki/Special:EntityData/"),
		WithHTTPClient(server.Client()),
		WithLogger(logging.NoOp()),
		WithRetryPolicy(&retry.Policy{MaximumAttempts: 1}),
	}
	return NewClient(append(base, options...)...), server
}

func TestClient_SearchEntities(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "wbsearchentities", r.URL.Query().Get("action"))
		assert.Equal(t, "Beckham", r.URL.Query().Get("search"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"search": [
			{"id": "Q10520", "label": "David Beckham", "description": "English footballer"},
			{"id": "Q466089", "label": "Victoria Beckham", "description": "English singer"}
		]}`))
	})

	results, err := client.SearchEntities(context.Background(), "Beckham")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Q10520", results[0].ID)
	assert.Equal(t, "David Beckham", results[0].Label)
}

func TestClient_SearchEntities_APIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": {"code": "param-missing", "info": "missing search parameter"}}`))
	})

	_, err := client.SearchEntities(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "param-missing")
}

func TestClient_GetClaims(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "wbgetentities", r.URL.Query().Get("action"))
		assert.Equal(t, "Q10520", r.URL.Query().Get("ids"))

		_, _ = w.Write([]byte(`{"entities": {"Q10520": {"claims": {
			"P31": [{"mainsnak": {"snaktype": "value", "property": "P31",
				"datavalue": {"type": "wikibase-entityid", "value": {"id": "Q5"}}}, "rank": "normal"}],
			"P106": [{"mainsnak": {"snaktype": "value", "property": "P106",
				"datavalue": {"type": "wikibase-entityid", "value": {"id": "Q937857"}}}, "rank": "normal"}]
		}}}}`))
	})

	claims, err := client.GetClaims(context.Background(), []string{"Q10520"})
	require.NoError(t, err)
	require.Contains(t, claims, "Q10520")
	assert.True(t, IsFootballPerson(claims["Q10520"]))
}

func TestClient_FetchEntityDocument(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/wiki/Special:EntityData/Q1001.jsonld", r.URL.Path)
		_, _ = w.Write([]byte(sampleJSONLD))
	}, WithCache(NewMemoryCache()))

	doc, err := client.FetchEntityDocument(context.Background(), "Q1001")
	require.NoError(t, err)
	assert.NotNil(t, doc.Entity("Q1001"))

	// Second fetch is served from cache
	doc, err = client.FetchEntityDocument(context.Background(), "Q1001")
	require.NoError(t, err)
	assert.NotNil(t, doc.Entity("Q1001"))
	assert.Equal(t, 1, requests)
}

func TestClient_FetchEntityDocument_ServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchEntityDocument(context.Background(), "Q1001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}
