package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"booknotion-be/internal/dto"

	"github.com/google/uuid"
)

var _ Gateway = (*HTTPClient)(nil)

// HTTPClient talks to a running server. Transport failures rotate through
// the fallback candidates before surfacing NETWORK_ERROR; application errors
// never retry.
type HTTPClient struct {
	httpClient *http.Client
	state      *StateStore
	candidates []string
	base       string // last known working base, empty until first success
}

func NewHTTPClient(state *StateStore, fallbacks ...string) *HTTPClient {
	override := ""
	if state != nil {
		override = state.BaseURL()
	}
	return &HTTPClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		state:      state,
		candidates: Candidates(override, fallbacks...),
	}
}

// bases returns the candidates to try, current working base first.
func (c *HTTPClient) bases() []string {
	if c.base == "" {
		return c.candidates
	}
	ordered := []string{c.base}
	for _, candidate := range c.candidates {
		if candidate != c.base {
			ordered = append(ordered, candidate)
		}
	}
	return ordered
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	var lastErr error
	for _, base := range c.bases() {
		req, err := http.NewRequestWithContext(ctx, method, base+path, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.state != nil && c.state.Token() != "" {
			req.Header.Set("Authorization", "Bearer "+c.state.Token())
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Transport failure: try the next fallback address.
			lastErr = err
			continue
		}

		c.base = base
		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return networkError(err)
		}

		if resp.StatusCode >= 400 {
			return responseError(resp.StatusCode, respBody)
		}
		if out != nil {
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("client: decoding response: %w", err)
			}
		}
		return nil
	}

	return networkError(lastErr)
}

func (c *HTTPClient) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	var res dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &res); err != nil {
		return nil, err
	}
	c.storeToken(res.Token)
	return &res, nil
}

func (c *HTTPClient) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var res dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &res); err != nil {
		return nil, err
	}
	c.storeToken(res.Token)
	return &res, nil
}

func (c *HTTPClient) storeToken(token string) {
	if c.state != nil && token != "" {
		_ = c.state.SetToken(token)
	}
}

func (c *HTTPClient) Me(ctx context.Context) (*dto.MeResponse, error) {
	var res dto.MeResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Refresh(ctx context.Context) (*dto.RefreshResponse, error) {
	var res dto.RefreshResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", nil, &res); err != nil {
		return nil, err
	}
	c.storeToken(res.Token)
	return &res, nil
}

func (c *HTTPClient) Sections(ctx context.Context) ([]*dto.SectionResponse, error) {
	res := make([]*dto.SectionResponse, 0)
	if err := c.do(ctx, http.MethodGet, "/api/sections", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *HTTPClient) Section(ctx context.Context, id uuid.UUID) (*dto.SectionResponse, error) {
	var res dto.SectionResponse
	if err := c.do(ctx, http.MethodGet, "/api/sections/"+id.String(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) CreateSection(ctx context.Context, req *dto.CreateSectionRequest) (*dto.SectionResponse, error) {
	var res dto.SectionResponse
	if err := c.do(ctx, http.MethodPost, "/api/sections", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) RenameSection(ctx context.Context, id uuid.UUID, req *dto.UpdateSectionRequest) (*dto.SectionResponse, error) {
	var res dto.SectionResponse
	if err := c.do(ctx, http.MethodPut, "/api/sections/"+id.String(), req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) DeleteSection(ctx context.Context, id uuid.UUID) (*dto.DeleteSectionResponse, error) {
	var res dto.DeleteSectionResponse
	if err := c.do(ctx, http.MethodDelete, "/api/sections/"+id.String(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) SectionNotebooks(ctx context.Context, id uuid.UUID) ([]*dto.NotebookResponse, error) {
	res := make([]*dto.NotebookResponse, 0)
	if err := c.do(ctx, http.MethodGet, "/api/sections/"+id.String()+"/notebooks", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *HTTPClient) SectionStats(ctx context.Context, id uuid.UUID) (*dto.SectionStatsResponse, error) {
	var res dto.SectionStatsResponse
	if err := c.do(ctx, http.MethodGet, "/api/sections/"+id.String()+"/stats", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Notebooks(ctx context.Context, sectionId *uuid.UUID) ([]*dto.NotebookResponse, error) {
	path := "/api/notebooks"
	if sectionId != nil {
		path += "?section_id=" + sectionId.String()
	}
	res := make([]*dto.NotebookResponse, 0)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *HTTPClient) Notebook(ctx context.Context, id uuid.UUID) (*dto.NotebookResponse, error) {
	var res dto.NotebookResponse
	if err := c.do(ctx, http.MethodGet, "/api/notebooks/"+id.String(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) CreateNotebook(ctx context.Context, req *dto.CreateNotebookRequest) (*dto.NotebookResponse, error) {
	var res dto.NotebookResponse
	if err := c.do(ctx, http.MethodPost, "/api/notebooks", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) UpdateNotebook(ctx context.Context, id uuid.UUID, req *dto.UpdateNotebookRequest) (*dto.NotebookResponse, error) {
	var res dto.NotebookResponse
	if err := c.do(ctx, http.MethodPut, "/api/notebooks/"+id.String(), req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) UpdateNotebookContent(ctx context.Context, id uuid.UUID, content string) (*dto.MessageResponse, error) {
	var res dto.MessageResponse
	req := dto.UpdateContentRequest{Content: &content}
	if err := c.do(ctx, http.MethodPatch, "/api/notebooks/"+id.String()+"/content", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) DuplicateNotebook(ctx context.Context, id uuid.UUID, req *dto.DuplicateNotebookRequest) (*dto.DuplicateNotebookResponse, error) {
	var res dto.DuplicateNotebookResponse
	if err := c.do(ctx, http.MethodPost, "/api/notebooks/"+id.String()+"/duplicate", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) DeleteNotebook(ctx context.Context, id uuid.UUID) (*dto.MessageResponse, error) {
	var res dto.MessageResponse
	if err := c.do(ctx, http.MethodDelete, "/api/notebooks/"+id.String(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) SearchNotebooks(ctx context.Context, query string, sectionId *uuid.UUID) ([]*dto.NotebookResponse, error) {
	params := url.Values{"q": {query}}
	if sectionId != nil {
		params.Set("section_id", sectionId.String())
	}
	res := make([]*dto.NotebookResponse, 0)
	if err := c.do(ctx, http.MethodGet, "/api/notebooks/search?"+params.Encode(), nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}
