// Package dds talks to a double dummy solver service over HTTP. The
// service wraps Bo Haglund's DDS library and keeps its conventions: batch
// size caps, and trick tables in solver strain order (spades, hearts,
// diamonds, clubs, no-trump).
package dds

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bridgelens/domain/bridge"
	"bridgelens/domain/mistake"
	apperrors "bridgelens/internal/errors"
	"bridgelens/ports"
)

// solverStrains is the solver's strain row order.
var solverStrains = [5]bridge.Denom{
	bridge.Spades, bridge.Hearts, bridge.Diamonds, bridge.Clubs, bridge.NoTrump,
}

// Client implements the Oracle interface against a solver service.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a solver client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 120 * time.Second},
	}
}

// NewClientWithHTTP creates a solver client with a caller-owned HTTP
// client, for tests and custom transports.
func NewClientWithHTTP(baseURL string, httpc *http.Client) *Client {
	return &Client{baseURL: baseURL, httpc: httpc}
}

type tablesRequest struct {
	Deals []string `json:"deals"`
}

type tablesResponse struct {
	// Tables holds one 5x4 matrix per deal, rows in solver strain order,
	// columns in seat order north, east, south, west.
	Tables [][5][4]int `json:"tables"`
}

// TrickTables solves up to MaxTableBatch deals and returns their trick
// tables, rows remapped from solver strain order to denomination order.
func (c *Client) TrickTables(ctx context.Context, deals []string) ([]mistake.TrickTable, error) {
	if len(deals) == 0 {
		return nil, nil
	}
	if len(deals) > ports.MaxTableBatch {
		return nil, apperrors.New("ORACLE_BATCH", fmt.Sprintf("table batch of %d exceeds the cap of %d", len(deals), ports.MaxTableBatch))
	}

	var resp tablesResponse
	if err := c.post(ctx, "/v1/tables", tablesRequest{Deals: deals}, &resp); err != nil {
		return nil, apperrors.Wrap(err, "failed to solve trick tables")
	}
	if len(resp.Tables) != len(deals) {
		return nil, apperrors.New("ORACLE_SHAPE", fmt.Sprintf("solver returned %d tables for %d deals", len(resp.Tables), len(deals)))
	}

	tables := make([]mistake.TrickTable, len(resp.Tables))
	for i, raw := range resp.Tables {
		for row, denom := range solverStrains {
			for seat, tricks := range raw[row] {
				tables[i][denom][seat] = tricks
			}
		}
	}
	return tables, nil
}

type playsRequest struct {
	Boards []playBoard `json:"boards"`
}

type playBoard struct {
	Deal   string `json:"deal"`
	Trump  string `json:"trump"`
	Leader string `json:"leader"`
	Play   string `json:"play"`
}

type playsResponse struct {
	Trajectories [][]int `json:"trajectories"`
}

// PlayTrajectories evaluates up to MaxPlayBatch play traces. Each returned
// trajectory starts with the deal's value before any card and continues
// with the value after each played card.
func (c *Client) PlayTrajectories(ctx context.Context, requests []ports.PlayRequest) ([]mistake.Trajectory, error) {
	if len(requests) == 0 {
		return nil, nil
	}
	if len(requests) > ports.MaxPlayBatch {
		return nil, apperrors.New("ORACLE_BATCH", fmt.Sprintf("play batch of %d exceeds the cap of %d", len(requests), ports.MaxPlayBatch))
	}

	req := playsRequest{Boards: make([]playBoard, len(requests))}
	for i, r := range requests {
		req.Boards[i] = playBoard{
			Deal:   r.Deal,
			Trump:  r.Trump.String(),
			Leader: r.Leader.String(),
			Play:   r.Play,
		}
	}

	var resp playsResponse
	if err := c.post(ctx, "/v1/plays", req, &resp); err != nil {
		return nil, apperrors.Wrap(err, "failed to solve play traces")
	}
	if len(resp.Trajectories) != len(requests) {
		return nil, apperrors.New("ORACLE_SHAPE", fmt.Sprintf("solver returned %d trajectories for %d plays", len(resp.Trajectories), len(requests)))
	}

	trajectories := make([]mistake.Trajectory, len(resp.Trajectories))
	for i, t := range resp.Trajectories {
		trajectories[i] = mistake.Trajectory(t)
	}
	return trajectories, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode solver request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build solver request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("solver request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("solver returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode solver response: %w", err)
	}
	return nil
}
