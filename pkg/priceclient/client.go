// Package priceclient is a typed HTTP client for the prices service.
package priceclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("price not found")
	ErrBadRequest  = errors.New("price request rejected")
	ErrBadStatus   = errors.New("prices bad status")
	ErrUnavailable = errors.New("prices unavailable")
)

const defaultTimeout = 3 * time.Second

type Price struct {
	ID    uuid.UUID `json:"id"`
	Price uint64    `json:"price"`
}

type Client struct {
	BaseURL string
	Client  *http.Client
}

func New(baseURL string) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) List(ctx context.Context) ([]Price, error) {
	var out []Price
	if err := c.do(ctx, http.MethodGet, "/prices", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, amount uint64) (Price, error) {
	var p Price
	err := c.do(ctx, http.MethodPost, "/prices", priceBody{Price: amount}, &p)
	return p, err
}

func (c *Client) Get(ctx context.Context, id uuid.UUID) (Price, error) {
	var p Price
	err := c.do(ctx, http.MethodGet, "/prices/"+id.String(), nil, &p)
	return p, err
}

func (c *Client) Update(ctx context.Context, id uuid.UUID, amount uint64) (Price, error) {
	var p Price
	err := c.do(ctx, http.MethodPatch, "/prices/"+id.String(), priceBody{Price: amount}, &p)
	return p, err
}

func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/prices/"+id.String(), nil, nil)
}

type priceBody struct {
	Price uint64 `json:"price"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	case http.StatusBadRequest:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrBadRequest
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
