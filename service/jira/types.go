package jira

import (
	"context"
	"net/http"

	"github.com/saral-digital/ops-dashboard/model"
)

type service struct {
	baseURL    string
	email      string
	apiToken   string
	projectKey string
	httpClient *http.Client
}

type JiraService interface {
	GetTasks(ctx context.Context) (*model.TaskList, error)
}

const (
	source     = "jira"
	maxResults = 50
	fields     = "summary,status,assignee,priority,created,updated"
)

type searchResponse struct {
	Total  *int    `json:"total"`
	Issues []issue `json:"issues"`
}

type issue struct {
	Key    string `json:"key"`
	Fields struct {
		Summary string `json:"summary"`
		Status  *struct {
			Name           string `json:"name"`
			StatusCategory *struct {
				Name string `json:"name"`
			} `json:"statusCategory"`
		} `json:"status"`
		Assignee *struct {
			DisplayName string `json:"displayName"`
		} `json:"assignee"`
		Priority *struct {
			Name string `json:"name"`
		} `json:"priority"`
		Created string `json:"created"`
		Updated string `json:"updated"`
	} `json:"fields"`
}
