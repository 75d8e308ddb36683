package model

// DevOpsProject is an Azure DevOps project
type DevOpsProject struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	URL            string `json:"url"`
	State          string `json:"state"`
	Visibility     string `json:"visibility"`
	LastUpdateTime string `json:"lastUpdateTime"`
}

// DevOpsProjects is the project listing
type DevOpsProjects struct {
	Projects []DevOpsProject `json:"projects"`
	Count    int             `json:"count"`
}

// Build is the subset of an Azure DevOps build the dashboard reads
type Build struct {
	ID           int         `json:"id"`
	BuildNumber  string      `json:"buildNumber"`
	Status       string      `json:"status"`
	Result       string      `json:"result"`
	QueueTime    string      `json:"queueTime"`
	StartTime    string      `json:"startTime"`
	FinishTime   string      `json:"finishTime"`
	SourceBranch string      `json:"sourceBranch"`
	Definition   *BuildRef   `json:"definition"`
	Project      *BuildRef   `json:"project"`
	RequestedBy  *Identity   `json:"requestedBy"`
	RequestedFor *Identity   `json:"requestedFor"`
	Links        *BuildLinks `json:"_links"`
}

// BuildRef references a build definition or project
type BuildRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Identity struct {
	DisplayName string `json:"displayName"`
}

type BuildLinks struct {
	Web *struct {
		Href string `json:"href"`
	} `json:"web"`
}

// TimelineRecord is one task of a build timeline
type TimelineRecord struct {
	Name   string `json:"name"`
	State  string `json:"state"`
	Result string `json:"result"`
}

// ScanTask is the outcome of a scanning task in a build
type ScanTask struct {
	Status string `json:"status"`
	Name   string `json:"name"`
}

// ScanResults holds the code-quality and container scan tasks of a build
type ScanResults struct {
	Sonar *ScanTask `json:"sonar"`
	Trivy *ScanTask `json:"trivy"`
}

// PipelineRun is a build formatted for the dashboard
type PipelineRun struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	PipelineName string       `json:"pipelineName"`
	PipelineID   *int         `json:"pipelineId"`
	ProjectName  string       `json:"projectName"`
	State        string       `json:"state"`
	Result       string       `json:"result"`
	CreatedDate  string       `json:"createdDate"`
	StartedDate  string       `json:"startedDate"`
	FinishedDate string       `json:"finishedDate"`
	URL          string       `json:"url"`
	SourceBranch string       `json:"sourceBranch"`
	RequestedBy  string       `json:"requestedBy"`
	Scans        *ScanResults `json:"scans"`
}

// PipelineRuns is the most recent runs across projects
type PipelineRuns struct {
	Runs  []PipelineRun `json:"runs"`
	Count int           `json:"count"`
}

// GitItem is an entry of a repository tree listing
type GitItem struct {
	Path     string `json:"path"`
	IsFolder bool   `json:"isFolder"`
}
