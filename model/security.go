package model

// Assessment is a Security Center recommendation
type Assessment struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
}

// SecurityScore summarises Security Center assessments
type SecurityScore struct {
	Enabled          bool         `json:"enabled"`
	ScorePercentage  int          `json:"scorePercentage"`
	Healthy          int          `json:"healthy"`
	Unhealthy        int          `json:"unhealthy"`
	NotApplicable    int          `json:"notApplicable"`
	TotalAssessments int          `json:"totalAssessments"`
	Assessments      []Assessment `json:"assessments"`
}

// TechStackItem is a detected framework, runtime, dependency or base image
type TechStackItem struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Version  string `json:"version"`
	Type     string `json:"type"` // runtime, framework, dependency, image
}

// TechStack is the technology inventory of the scanned repositories
type TechStack struct {
	TechStack []TechStackItem `json:"techStack"`
	Repos     []string        `json:"repos"`
	Timestamp string          `json:"timestamp"`
}

// Vulnerability is one OSV advisory affecting a package version
type Vulnerability struct {
	ID       string `json:"id"`
	Severity string `json:"severity"`
	Summary  string `json:"summary"`
	Fixed    string `json:"fixed,omitempty"`
}

// VulnStatus is the overall state of a scanned package
type VulnStatus string

const (
	VulnStatusSafe     VulnStatus = "safe"
	VulnStatusWarning  VulnStatus = "warning"
	VulnStatusCritical VulnStatus = "critical"
	VulnStatusUnknown  VulnStatus = "unknown"
)

// VulnResult is the scan outcome for one package
type VulnResult struct {
	Package         string          `json:"package"`
	Version         string          `json:"version"`
	Ecosystem       string          `json:"ecosystem"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
	Status          VulnStatus      `json:"status"`
}

// ScanSummary counts results per status
type ScanSummary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Safe     int `json:"safe"`
	Unknown  int `json:"unknown"`
}

// SecurityScan is the vulnerability report for the tech stack
type SecurityScan struct {
	Results   []VulnResult `json:"results"`
	Summary   ScanSummary  `json:"summary"`
	Timestamp string       `json:"timestamp"`
	Cached    bool         `json:"cached"`
}
