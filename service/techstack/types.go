package techstack

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/saral-digital/ops-dashboard/model"
	"github.com/saral-digital/ops-dashboard/service/devops"
)

// RepoReader reads repository trees and files
type RepoReader interface {
	ListItems(ctx context.Context, project, repo string, recursion devops.Recursion) ([]model.GitItem, error)
	GetFileContent(ctx context.Context, project, repo, path string) (string, error)
}

type service struct {
	reader        RepoReader
	project       string
	frontendRepos []string
	backendRepos  []string
	logger        zerolog.Logger
	now           func() time.Time
}

type TechStackService interface {
	GetTechStack(ctx context.Context) (*model.TechStack, error)
}

const (
	categoryFrontend       = "Frontend"
	categoryBackend        = "Backend"
	categoryInfrastructure = "Infrastructure"

	typeRuntime    = "runtime"
	typeFramework  = "framework"
	typeDependency = "dependency"
	typeImage      = "image"
)
