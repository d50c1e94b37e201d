package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/leolovestravel/vietnamtravel/internal/models"
)

type categoryPayload struct {
	ID   FlexInt `json:"id"`
	Name string  `json:"name"`
}

// categoryList decodes the canonical bare array and, for older deployments,
// the {"categories": [...]} and {"data": [...]} wrappers.
type categoryList []categoryPayload

func (l *categoryList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var items []categoryPayload
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var wrapped struct {
		Categories []categoryPayload `json:"categories"`
		Data       []categoryPayload `json:"data"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return err
	}
	switch {
	case wrapped.Categories != nil:
		*l = wrapped.Categories
	case wrapped.Data != nil:
		*l = wrapped.Data
	default:
		return ErrMalformedResponse
	}
	return nil
}

func (c *Client) GetCategories(ctx context.Context, headers http.Header) ([]models.Category, error) {
	var list categoryList
	if _, err := c.do(ctx, http.MethodGet, EndpointGetCategories, nil, headers, nil, &list); err != nil {
		return nil, err
	}

	categories := make([]models.Category, len(list))
	for i, p := range list {
		categories[i] = models.Category{ID: int(p.ID), Name: p.Name}
	}
	return categories, nil
}

// mutationResult reads write outcomes. "success" is canonical; "status" and
// "result" are legacy spellings of the same flag.
type mutationResult struct {
	Success json.RawMessage `json:"success"`
	Status  json.RawMessage `json:"status"`
	Result  json.RawMessage `json:"result"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

var ErrRejected = errors.New("request rejected")

func (m mutationResult) ok() bool {
	switch {
	case len(m.Success) > 0:
		return truthy(m.Success)
	case len(m.Status) > 0:
		return truthy(m.Status)
	case len(m.Result) > 0:
		return truthy(m.Result)
	}
	return m.Error == ""
}

func (m mutationResult) message() string {
	if m.Message != "" {
		return m.Message
	}
	return m.Error
}

type nameBody struct {
	Name string `json:"name"`
}

func (c *Client) AddCategory(ctx context.Context, headers http.Header, name string) error {
	return c.mutate(ctx, http.MethodPost, EndpointAddCategory, nil, headers, nameBody{Name: name})
}

func (c *Client) UpdateCategory(ctx context.Context, headers http.Header, id int, name string) error {
	q := url.Values{"id": {strconv.Itoa(id)}}
	return c.mutate(ctx, http.MethodPost, EndpointUpdateCategory, q, headers, nameBody{Name: name})
}

func (c *Client) DeleteCategory(ctx context.Context, headers http.Header, id int) error {
	q := url.Values{"id": {strconv.Itoa(id)}}
	return c.mutate(ctx, http.MethodGet, EndpointDeleteCategory, q, headers, nil)
}

func (c *Client) mutate(ctx context.Context, method, endpoint string, query url.Values, headers http.Header, body interface{}) error {
	var result mutationResult
	if _, err := c.do(ctx, method, endpoint, query, headers, body, &result); err != nil {
		return err
	}
	if !result.ok() {
		return NewAPIError(endpoint, http.StatusOK, result.message(), ErrRejected)
	}
	return nil
}
