package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"monopoly/action"
)

type scoreRequest struct {
	State  []float64      `json:"state"`
	Groups []action.Group `json:"groups"`
}

type scoreResponse struct {
	Scores map[action.Group][]float64 `json:"scores"`
}

// Client asks a remote policy server for scores.
type Client struct {
	url  string
	http *http.Client
}

func NewClient(serverURL string) *Client {
	return &Client{
		url:  serverURL,
		http: &http.Client{},
	}
}

func (c *Client) Score(ctx context.Context, state []float64, groups []action.Group) (map[action.Group][]float64, error) {
	body, err := json.Marshal(scoreRequest{State: state, Groups: groups})
	if err != nil {
		return nil, fmt.Errorf("failed to encode score request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/score", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach scorer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("scorer returned status %d: %s", resp.StatusCode, out)
	}

	var sr scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("failed to decode scores: %w", err)
	}
	if err := Check(sr.Scores, groups); err != nil {
		return nil, err
	}
	return sr.Scores, nil
}
