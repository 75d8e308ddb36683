package devops

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/saral-digital/ops-dashboard/model"
	"golang.org/x/sync/errgroup"
)

var (
	sonarTaskNames = []string{"SonarCloud Analysis", "SonarQube Analysis"}
	trivyTaskNames = []string{"Trivy Container Scan", "Trivy Scan"}
)

// GetPipelineRuns returns the latest builds across projects, newest first.
// An empty project list means every project of the organization. A project
// whose builds cannot be fetched contributes no runs; a build whose timeline
// cannot be fetched has no scan results.
func (s *service) GetPipelineRuns(ctx context.Context, projects []string, includeScans bool) (*model.PipelineRuns, error) {
	if len(projects) == 0 {
		all, err := s.ListProjects(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range all {
			projects = append(projects, p.Name)
		}
	}

	builds := s.fetchBuilds(ctx, projects)
	SortBuilds(builds)

	limit := runLimit
	if includeScans {
		limit = runLimitScans
	}
	if len(builds) > limit {
		builds = builds[:limit]
	}

	var scans []*model.ScanResults
	if includeScans {
		scans = s.fetchScans(ctx, builds)
	}

	runs := make([]model.PipelineRun, 0, len(builds))
	for i, build := range builds {
		run := s.formatRun(build)
		if scans != nil {
			run.Scans = scans[i]
		}
		runs = append(runs, run)
	}

	return &model.PipelineRuns{Runs: runs, Count: len(runs)}, nil
}

func (s *service) fetchBuilds(ctx context.Context, projects []string) []model.Build {
	perProject := make([][]model.Build, len(projects))

	g, gctx := errgroup.WithContext(ctx)
	for i, project := range projects {
		g.Go(func() error {
			builds, err := s.ListBuilds(gctx, project)
			if err != nil {
				s.logger.Warn().Err(err).Str("project", project).Msg("failed to fetch builds")
				return nil
			}
			perProject[i] = builds
			return nil
		})
	}
	_ = g.Wait()

	var all []model.Build
	for _, builds := range perProject {
		all = append(all, builds...)
	}
	return all
}

func (s *service) fetchScans(ctx context.Context, builds []model.Build) []*model.ScanResults {
	scans := make([]*model.ScanResults, len(builds))

	g, gctx := errgroup.WithContext(ctx)
	for i, build := range builds {
		g.Go(func() error {
			records, err := s.GetTimeline(gctx, projectName(build), build.ID)
			if err != nil {
				s.logger.Debug().Err(err).Int("build", build.ID).Msg("failed to fetch timeline")
				return nil
			}
			scans[i] = ScanResultsFromTimeline(records)
			return nil
		})
	}
	_ = g.Wait()

	return scans
}

func (s *service) formatRun(build model.Build) model.PipelineRun {
	run := model.PipelineRun{
		ID:           build.ID,
		Name:         build.BuildNumber,
		PipelineName: "Unknown Pipeline",
		ProjectName:  "Unknown Project",
		State:        build.Status,
		Result:       build.Result,
		CreatedDate:  build.QueueTime,
		StartedDate:  build.StartTime,
		FinishedDate: build.FinishTime,
		SourceBranch: strings.Replace(build.SourceBranch, "refs/heads/", "", 1),
	}
	if run.Name == "" {
		run.Name = fmt.Sprintf("Build #%d", build.ID)
	}
	if build.Definition != nil {
		id := build.Definition.ID
		run.PipelineID = &id
		if build.Definition.Name != "" {
			run.PipelineName = build.Definition.Name
		}
	}
	if build.Project != nil && build.Project.Name != "" {
		run.ProjectName = build.Project.Name
	}
	if build.RequestedBy != nil && build.RequestedBy.DisplayName != "" {
		run.RequestedBy = build.RequestedBy.DisplayName
	} else if build.RequestedFor != nil {
		run.RequestedBy = build.RequestedFor.DisplayName
	}
	if build.Links != nil && build.Links.Web != nil && build.Links.Web.Href != "" {
		run.URL = build.Links.Web.Href
	} else {
		run.URL = fmt.Sprintf("%s/%s/%s/_build/results?buildId=%d", s.baseURL, s.org, projectName(build), build.ID)
	}
	return run
}

func projectName(build model.Build) string {
	if build.Project == nil {
		return ""
	}
	return build.Project.Name
}

// SortBuilds orders builds by start time, falling back to queue time, newest first
func SortBuilds(builds []model.Build) {
	sort.SliceStable(builds, func(i, j int) bool {
		return buildTime(builds[i]).After(buildTime(builds[j]))
	})
}

func buildTime(build model.Build) time.Time {
	raw := build.StartTime
	if raw == "" {
		raw = build.QueueTime
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ScanResultsFromTimeline picks the SonarCloud/SonarQube and Trivy tasks out of
// a build timeline. A task's status is its result, or its state while running.
func ScanResultsFromTimeline(records []model.TimelineRecord) *model.ScanResults {
	return &model.ScanResults{
		Sonar: findTask(records, sonarTaskNames),
		Trivy: findTask(records, trivyTaskNames),
	}
}

func findTask(records []model.TimelineRecord, names []string) *model.ScanTask {
	for _, record := range records {
		for _, name := range names {
			if !strings.Contains(record.Name, name) {
				continue
			}
			status := record.Result
			if status == "" {
				status = record.State
			}
			return &model.ScanTask{Status: status, Name: record.Name}
		}
	}
	return nil
}
