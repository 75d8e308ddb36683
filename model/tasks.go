package model

// Task is a Jira issue summarised for the task allocation view
type Task struct {
	Key            string `json:"key"`
	Summary        string `json:"summary"`
	Status         string `json:"status"`
	StatusCategory string `json:"statusCategory"`
	Assignee       string `json:"assignee"`
	Priority       string `json:"priority"`
	Created        string `json:"created"`
	Updated        string `json:"updated"`
}

// TaskList is the latest issues of the configured project
type TaskList struct {
	Total int    `json:"total"`
	Tasks []Task `json:"tasks"`
}

// Environment is a deployed environment with its frontend and backend health URLs
type Environment struct {
	Name       string
	URL        string
	BackendURL string
}

// EnvironmentHealth is the result of probing one environment.
// Response times are in milliseconds and nil when the probe failed.
type EnvironmentHealth struct {
	Name                string `json:"name"`
	URL                 string `json:"url"`
	Status              string `json:"status"`
	ResponseTime        *int64 `json:"responseTime"`
	BackendStatus       string `json:"backendStatus"`
	BackendResponseTime *int64 `json:"backendResponseTime"`
}

// HealthReport lists the health of every configured environment
type HealthReport struct {
	Environments []EnvironmentHealth `json:"environments"`
	Timestamp    string              `json:"timestamp"`
}
