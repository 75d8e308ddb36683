package jira

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/saral-digital/ops-dashboard/model"
)

func NewService(domain, email, apiToken, projectKey string, httpClient *http.Client) *service {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &service{
		baseURL:    "https://" + strings.TrimSuffix(domain, "/"),
		email:      email,
		apiToken:   apiToken,
		projectKey: projectKey,
		httpClient: httpClient,
	}
}

// GetTasks returns the 50 most recently created issues of the project
func (s *service) GetTasks(ctx context.Context) (*model.TaskList, error) {
	query := url.Values{
		"jql":        {fmt.Sprintf("project = %s ORDER BY created DESC", s.projectKey)},
		"maxResults": {strconv.Itoa(maxResults)},
		"fields":     {fields},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/rest/api/3/search/jql?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build Jira request: %w", err)
	}
	req.SetBasicAuth(s.email, s.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, model.NewFetchFailed(source, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, model.NewFetchFailed(source, 0, fmt.Errorf("failed to read Jira response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, model.NewFetchFailed(source, resp.StatusCode, errors.New(strings.TrimSpace(string(body))))
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, model.NewFetchFailed(source, 0, fmt.Errorf("failed to decode Jira response: %w", err))
	}

	tasks := make([]model.Task, 0, len(result.Issues))
	for _, is := range result.Issues {
		tasks = append(tasks, toTask(is))
	}

	total := len(tasks)
	if result.Total != nil {
		total = *result.Total
	}
	return &model.TaskList{Total: total, Tasks: tasks}, nil
}

func toTask(is issue) model.Task {
	task := model.Task{
		Key:            is.Key,
		Summary:        is.Fields.Summary,
		Status:         "Unknown",
		StatusCategory: "Unknown",
		Assignee:       "Unassigned",
		Priority:       "None",
		Created:        is.Fields.Created,
		Updated:        is.Fields.Updated,
	}
	if st := is.Fields.Status; st != nil {
		if st.Name != "" {
			task.Status = st.Name
		}
		if st.StatusCategory != nil && st.StatusCategory.Name != "" {
			task.StatusCategory = st.StatusCategory.Name
		}
	}
	if is.Fields.Assignee != nil && is.Fields.Assignee.DisplayName != "" {
		task.Assignee = is.Fields.Assignee.DisplayName
	}
	if is.Fields.Priority != nil && is.Fields.Priority.Name != "" {
		task.Priority = is.Fields.Priority.Name
	}
	return task
}
