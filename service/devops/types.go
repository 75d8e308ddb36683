package devops

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/saral-digital/ops-dashboard/model"
)

type service struct {
	baseURL    string
	org        string
	pat        string
	httpClient *http.Client
	logger     zerolog.Logger
}

type DevOpsService interface {
	ListProjects(ctx context.Context) ([]model.DevOpsProject, error)
	ListBuilds(ctx context.Context, project string) ([]model.Build, error)
	GetTimeline(ctx context.Context, project string, buildID int) ([]model.TimelineRecord, error)
	ListItems(ctx context.Context, project, repo string, recursion Recursion) ([]model.GitItem, error)
	GetFileContent(ctx context.Context, project, repo, path string) (string, error)
	GetPipelineRuns(ctx context.Context, projects []string, includeScans bool) (*model.PipelineRuns, error)
}

// Recursion is the depth of a repository item listing
type Recursion string

const (
	RecursionOneLevel Recursion = "OneLevel"
	RecursionFull     Recursion = "Full"
)

const (
	defaultBaseURL = "https://dev.azure.com"
	apiVersion     = "7.1"
	source         = "azure-devops"

	buildsPerProject = 100
	runLimit         = 100
	runLimitScans    = 20
)

type listResponse[T any] struct {
	Count int `json:"count"`
	Value []T `json:"value"`
}

type timelineResponse struct {
	Records []model.TimelineRecord `json:"records"`
}
