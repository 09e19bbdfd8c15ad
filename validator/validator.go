// Package validator is a call-through to the pretrained change-verification
// model service. The model itself is an external collaborator; this client
// only posts the candidate geometry and decodes the verdict.
package validator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"padmon/models"
)

type Client struct {
	endpoint string
	client   *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type verifyRequest struct {
	Ring      models.Ring `json:"coordinates"`
	YearStart int         `json:"year_start"`
	YearEnd   int         `json:"year_end"`
}

// Result is the model's verdict on one candidate change.
type Result struct {
	Verified   bool    `json:"verified"`
	Confidence float64 `json:"confidence"`
	Label      string  `json:"label"`
	Status     string  `json:"status"`
}

func (c *Client) Verify(ctx context.Context, change models.LandChange, yearStart, yearEnd int) (*Result, error) {
	body, err := json.Marshal(verifyRequest{Ring: change.Ring, YearStart: yearStart, YearEnd: yearEnd})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal verification request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/verify", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("validator request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("validator returned status %d", resp.StatusCode)
	}
	var result Result
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode validator response: %w", err)
	}
	return &result, nil
}
