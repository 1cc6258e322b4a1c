package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/streamnest/vod-catalog/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCollection(t *testing.T) {
	type testCase struct {
		body  string
		keys  []string
		fails bool
	}

	testCases := []testCase{
		{body: `null`, keys: nil},
		{body: ``, keys: nil},
		{body: `[]`, keys: []string{}},
		{body: `[{"title":"A"},{"title":"B"}]`, keys: []string{"0", "1"}},
		{body: `[{"title":"A"},null,{"title":"C"}]`, keys: []string{"0", "2"}},
		{body: `{"mov2":{"title":"B"},"mov1":{"title":"A"}}`, keys: []string{"mov1", "mov2"}},
		{body: `{"mov1":null,"mov2":{"title":"B"}}`, keys: []string{"mov2"}},
		{body: `{"mov1":`, fails: true},
		{body: `"just a string"`, fails: true},
	}

	for i, tc := range testCases {
		records, err := DecodeCollection([]byte(tc.body))
		if tc.fails {
			assert.Error(t, err, "Test %d failed", i)
			continue
		}
		require.NoError(t, err, "Test %d failed", i)
		got := make([]string, 0, len(records))
		for _, r := range records {
			got = append(got, r.Key)
		}
		assert.Equal(t, tc.keys, got, "Test %d failed", i)
	}
}

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{url: srv.URL + "/titles.json", cli: srv.Client()}
}

func TestFetchCollection(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/titles.json", r.URL.Path)
		w.Write([]byte(`{"mov1":{"title":"A","year":2020}}`))
	})

	records, err := c.FetchCollection(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "mov1", records[0].Key)
	assert.Equal(t, "A", records[0].Fields["title"])
}

func TestFetchCollectionAbsent(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	records, err := c.FetchCollection(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, records)
}

func TestFetchCollectionServerError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.FetchCollection(context.Background())
	assert.Error(t, err)
}

func TestRemoteURL(t *testing.T) {
	r := config.Remote{Scheme: "https", Host: "store.example.com", Port: 443, Path: "/api/titles.json"}
	assert.Equal(t, "https://store.example.com:443/api/titles.json", r.URL())
}
