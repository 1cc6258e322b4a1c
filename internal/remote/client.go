// Package remote talks to the backend title store: a single collection path
// yielding either an array or a string-keyed map of loosely typed records.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/streamnest/vod-catalog/internal/config"
)

// Record is one raw backend entry plus the key it was stored under.
type Record struct {
	Key    string
	Fields map[string]any
}

const fetchTimeout = 30 * time.Second

type Client struct {
	url string
	cli *http.Client
}

func NewClient(remote config.Remote) *Client {
	return &Client{
		url: remote.URL(),
		cli: &http.Client{Timeout: fetchTimeout},
	}
}

// FetchCollection downloads and decodes the collection. An absent path or a
// null body is a valid empty catalog, not an error.
func (c *Client) FetchCollection(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.cli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s failed: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s failed: status %d", c.url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response failed: %w", err)
	}
	return DecodeCollection(body)
}

// DecodeCollection parses an array or string-keyed map of raw records.
// Map keys become record keys (sorted for determinism), array indices do.
func DecodeCollection(body []byte) ([]Record, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, nil
	}

	if body[0] == '[' {
		var list []map[string]any
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("decode collection failed: %w", err)
		}
		records := make([]Record, 0, len(list))
		for i, fields := range list {
			if fields == nil {
				continue
			}
			records = append(records, Record{Key: fmt.Sprintf("%d", i), Fields: fields})
		}
		return records, nil
	}

	var byKey map[string]map[string]any
	if err := json.Unmarshal(body, &byKey); err != nil {
		return nil, fmt.Errorf("decode collection failed: %w", err)
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	records := make([]Record, 0, len(keys))
	for _, k := range keys {
		if byKey[k] == nil {
			continue
		}
		records = append(records, Record{Key: k, Fields: byKey[k]})
	}
	return records, nil
}
