package techstack

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/saral-digital/ops-dashboard/model"
	"github.com/saral-digital/ops-dashboard/service/devops"
)

func NewService(reader RepoReader, project string, frontendRepos, backendRepos []string, logger zerolog.Logger) *service {
	return &service{
		reader:        reader,
		project:       project,
		frontendRepos: frontendRepos,
		backendRepos:  backendRepos,
		logger:        logger.With().Str("component", "techstack").Logger(),
		now:           time.Now,
	}
}

// GetTechStack scans the configured repositories. A repository whose tree
// cannot be listed is skipped, as is any file that cannot be read.
func (s *service) GetTechStack(ctx context.Context) (*model.TechStack, error) {
	items := []model.TechStackItem{}

	for _, repo := range s.frontendRepos {
		items = append(items, s.scanFrontend(ctx, repo)...)
	}
	for _, repo := range s.backendRepos {
		items = append(items, s.scanBackend(ctx, repo)...)
	}

	return &model.TechStack{
		TechStack: items,
		Repos:     append(append([]string{}, s.frontendRepos...), s.backendRepos...),
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *service) scanFrontend(ctx context.Context, repo string) []model.TechStackItem {
	tree, err := s.reader.ListItems(ctx, s.project, repo, devops.RecursionOneLevel)
	if err != nil {
		s.logger.Warn().Err(err).Str("repo", repo).Msg("failed to list repository items")
		return nil
	}
	if !hasPath(tree, "/package.json") {
		return nil
	}

	content, ok := s.read(ctx, repo, "/package.json")
	if !ok {
		return nil
	}
	items, err := ParsePackageJSON(content)
	if err != nil {
		s.logger.Warn().Err(err).Str("repo", repo).Msg("skipping package.json")
		return nil
	}
	return items
}

func (s *service) scanBackend(ctx context.Context, repo string) []model.TechStackItem {
	tree, err := s.reader.ListItems(ctx, s.project, repo, devops.RecursionFull)
	if err != nil {
		s.logger.Warn().Err(err).Str("repo", repo).Msg("failed to list repository tree")
		return nil
	}

	var items []model.TechStackItem

	dockerfile, found := lo.Find(tree, func(item model.GitItem) bool {
		return !item.IsFolder && (item.Path == "/Dockerfile" || strings.HasSuffix(item.Path, "/Dockerfile"))
	})
	if found {
		if content, ok := s.read(ctx, repo, dockerfile.Path); ok {
			items = append(items, ParseDockerfile(content)...)
		}
	}

	if hasPath(tree, "/Directory.Build.props") {
		if content, ok := s.read(ctx, repo, "/Directory.Build.props"); ok {
			items = append(items, ParseBuildProps(content)...)
		}
	}

	if hasPath(tree, "/Directory.Packages.props") {
		if content, ok := s.read(ctx, repo, "/Directory.Packages.props"); ok {
			items = append(items, ParsePackagesProps(content)...)
		}
	}

	return items
}

func (s *service) read(ctx context.Context, repo, path string) (string, bool) {
	content, err := s.reader.GetFileContent(ctx, s.project, repo, path)
	if err != nil {
		s.logger.Warn().Err(err).Str("repo", repo).Str("path", path).Msg("failed to read file")
		return "", false
	}
	return content, true
}

func hasPath(items []model.GitItem, path string) bool {
	return lo.ContainsBy(items, func(item model.GitItem) bool { return item.Path == path })
}
