package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/OmatthewY/explore-with-me/core/constants"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/utils"
	"github.com/OmatthewY/explore-with-me/stats/dto"
)

// StatsGetter reads aggregated view counts.
type StatsGetter interface {
	GetStats(ctx context.Context, req dto.StatsRequest) ([]dto.ViewStats, error)
}

// HitSender records a single hit.
type HitSender interface {
	Hit(ctx context.Context, hit dto.EndpointHit) error
}

// StatusError is returned for non-2xx answers of the stats server.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("stats server responded %d: %s", e.Status, e.Body)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = constants.StatsClientTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Hit(ctx context.Context, hit dto.EndpointHit) error {
	body, err := json.Marshal(hit)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hit", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("StatsClient:Hit:RequestFailed", "uri", hit.URI, "error", err)
		return fmt.Errorf("send hit: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) GetStats(ctx context.Context, sr dto.StatsRequest) ([]dto.ViewStats, error) {
	query := url.Values{}
	query.Set("start", utils.FormatDateTime(sr.Start))
	query.Set("end", utils.FormatDateTime(sr.End))
	for _, uri := range sr.URIs {
		query.Add("uris", uri)
	}
	query.Set("unique", strconv.FormatBool(sr.Unique))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("StatsClient:GetStats:RequestFailed", "uris", len(sr.URIs), "error", err)
		return nil, fmt.Errorf("get stats: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var stats []dto.ViewStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return stats, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

// EventURI is the path hits are recorded under for one event.
func EventURI(eventID int64) string {
	return constants.EventURIPrefix + strconv.FormatInt(eventID, 10)
}

// EventIDFromURI parses "/events/{id}"; ok is false for any other shape.
func EventIDFromURI(uri string) (int64, bool) {
	rest, found := strings.CutPrefix(uri, constants.EventURIPrefix)
	if !found || rest == "" || strings.Contains(rest, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
