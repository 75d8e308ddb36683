package devops

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/saral-digital/ops-dashboard/model"
)

// NewService builds a client for an Azure DevOps organization authenticated
// with a personal access token. A nil httpClient gets a 30s timeout.
func NewService(org, pat string, httpClient *http.Client, logger zerolog.Logger) *service {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &service{
		baseURL:    defaultBaseURL,
		org:        org,
		pat:        pat,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "devops").Logger(),
	}
}

func (s *service) ListProjects(ctx context.Context) ([]model.DevOpsProject, error) {
	var resp listResponse[model.DevOpsProject]
	if err := s.getJSON(ctx, s.orgURL("_apis/projects", nil), &resp); err != nil {
		return nil, err
	}
	if resp.Value == nil {
		return []model.DevOpsProject{}, nil
	}
	return resp.Value, nil
}

func (s *service) ListBuilds(ctx context.Context, project string) ([]model.Build, error) {
	query := url.Values{"$top": {strconv.Itoa(buildsPerProject)}}
	var resp listResponse[model.Build]
	if err := s.getJSON(ctx, s.projectURL(project, "_apis/build/builds", query), &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

func (s *service) GetTimeline(ctx context.Context, project string, buildID int) ([]model.TimelineRecord, error) {
	path := fmt.Sprintf("_apis/build/builds/%d/timeline", buildID)
	var resp timelineResponse
	if err := s.getJSON(ctx, s.projectURL(project, path, nil), &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

func (s *service) ListItems(ctx context.Context, project, repo string, recursion Recursion) ([]model.GitItem, error) {
	path := fmt.Sprintf("_apis/git/repositories/%s/items", url.PathEscape(repo))
	query := url.Values{"recursionLevel": {string(recursion)}}
	var resp listResponse[model.GitItem]
	if err := s.getJSON(ctx, s.projectURL(project, path, query), &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// GetFileContent returns the raw content of one file at the default branch
func (s *service) GetFileContent(ctx context.Context, project, repo, filePath string) (string, error) {
	path := fmt.Sprintf("_apis/git/repositories/%s/items", url.PathEscape(repo))
	query := url.Values{"path": {filePath}}
	body, err := s.get(ctx, s.projectURL(project, path, query))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (s *service) orgURL(path string, query url.Values) string {
	return s.buildURL(fmt.Sprintf("%s/%s/%s", s.baseURL, url.PathEscape(s.org), path), query)
}

func (s *service) projectURL(project, path string, query url.Values) string {
	return s.buildURL(fmt.Sprintf("%s/%s/%s/%s", s.baseURL, url.PathEscape(s.org), url.PathEscape(project), path), query)
}

func (s *service) buildURL(base string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api-version", apiVersion)
	return base + "?" + query.Encode()
}

func (s *service) getJSON(ctx context.Context, rawURL string, out any) error {
	body, err := s.get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return model.NewFetchFailed(source, 0, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func (s *service) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth("", s.pat)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, model.NewFetchFailed(source, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, model.NewFetchFailed(source, 0, fmt.Errorf("failed to read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, model.NewFetchFailed(source, resp.StatusCode, fmt.Errorf("GET %s returned %s", req.URL.Path, strings.TrimSpace(string(body))))
	}
	return body, nil
}
