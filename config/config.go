package config

import (
	"os"
	"strings"
	"time"

	"github.com/saral-digital/ops-dashboard/model"
)

// Config holds environment-based configuration for every upstream the dashboard polls
type Config struct {
	// Azure configuration
	AzureSubscriptionID string

	// Azure DevOps configuration
	DevOpsOrg string
	DevOpsPAT string

	// Jira configuration
	JiraEmail      string
	JiraAPIToken   string
	JiraDomain     string
	JiraProjectKey string

	// Cost history window start; zero means twelve months back
	CostHistoryStart time.Time

	// Repositories scanned for the tech stack
	TechStackProject       string
	TechStackFrontendRepos []string
	TechStackBackendRepos  []string

	HealthEnvironments []model.Environment

	// Server configuration
	ListenAddr string
	UIDir      string
	LogLevel   string
	LogFormat  string

	// Variables that were set but could not be parsed
	Invalid []model.InvalidValue
}

var defaultEnvironments = []model.Environment{
	{Name: "Aqua", URL: "https://aqua.saral.digital", BackendURL: "https://api-aqua.saral.digital/health"},
	{Name: "Aer", URL: "https://aer.saral.digital", BackendURL: "https://api-aer.saral.digital/health"},
	{Name: "Ignis", URL: "https://ignis.saral.digital", BackendURL: "https://api-ignis.saral.digital/health"},
	{Name: "Terra", URL: "https://terra.saral.digital", BackendURL: "https://api-terra.saral.digital/health"},
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	cfg := &Config{
		AzureSubscriptionID:    os.Getenv("AZURE_SUBSCRIPTION_ID"),
		DevOpsOrg:              os.Getenv("AZURE_DEVOPS_ORG"),
		DevOpsPAT:              os.Getenv("AZURE_DEVOPS_PAT"),
		JiraEmail:              os.Getenv("JIRA_EMAIL"),
		JiraAPIToken:           os.Getenv("JIRA_API_TOKEN"),
		JiraDomain:             os.Getenv("JIRA_DOMAIN"),
		JiraProjectKey:         os.Getenv("JIRA_PROJECT_KEY"),
		TechStackProject:       getEnvOrDefault("TECHSTACK_PROJECT", "Saral"),
		TechStackFrontendRepos: splitList(getEnvOrDefault("TECHSTACK_FRONTEND_REPOS", "SaralFrontend")),
		TechStackBackendRepos:  splitList(getEnvOrDefault("TECHSTACK_BACKEND_REPOS", "SaralBackend")),
		HealthEnvironments:     parseEnvironments(os.Getenv("HEALTH_ENVIRONMENTS")),
		ListenAddr:             getEnvOrDefault("LISTEN_ADDR", ":8080"),
		UIDir:                  os.Getenv("UI_DIR"),
		LogLevel:               getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:              getEnvOrDefault("LOG_FORMAT", "json"),
	}

	if start := os.Getenv("COST_HISTORY_START"); start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			cfg.Invalid = append(cfg.Invalid, model.InvalidValue{Variable: "COST_HISTORY_START", Value: start, Expected: "YYYY-MM-DD"})
		} else {
			cfg.CostHistoryStart = t
		}
	}

	return cfg
}

// HasAzure returns true if Azure subscription is configured
func (c *Config) HasAzure() bool {
	return c.AzureSubscriptionID != ""
}

// RequireAzure reports the missing Azure variable, if any
func (c *Config) RequireAzure() error {
	return requireEnv("AZURE_SUBSCRIPTION_ID", c.AzureSubscriptionID)
}

// RequireDevOps reports the first missing Azure DevOps variable, if any
func (c *Config) RequireDevOps() error {
	if err := requireEnv("AZURE_DEVOPS_ORG", c.DevOpsOrg); err != nil {
		return err
	}
	return requireEnv("AZURE_DEVOPS_PAT", c.DevOpsPAT)
}

// RequireJira reports the first missing Jira variable, if any
func (c *Config) RequireJira() error {
	if err := requireEnv("JIRA_EMAIL", c.JiraEmail); err != nil {
		return err
	}
	if err := requireEnv("JIRA_API_TOKEN", c.JiraAPIToken); err != nil {
		return err
	}
	if err := requireEnv("JIRA_DOMAIN", c.JiraDomain); err != nil {
		return err
	}
	return requireEnv("JIRA_PROJECT_KEY", c.JiraProjectKey)
}

// HistoryStart returns the first day of the cost history window
func (c *Config) HistoryStart(now time.Time) time.Time {
	if !c.CostHistoryStart.IsZero() {
		return c.CostHistoryStart
	}
	return time.Date(now.Year(), now.Month()-12, 1, 0, 0, 0, 0, time.UTC)
}

func requireEnv(name, value string) error {
	if value == "" {
		return &model.ConfigurationMissingError{Variable: name}
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseEnvironments reads "Name|url|backendUrl;Name|url|backendUrl".
// Malformed entries are skipped; an empty value yields the default environments.
func parseEnvironments(value string) []model.Environment {
	if strings.TrimSpace(value) == "" {
		return defaultEnvironments
	}

	var envs []model.Environment
	for _, entry := range strings.Split(value, ";") {
		parts := strings.Split(strings.TrimSpace(entry), "|")
		if len(parts) != 3 {
			continue
		}
		envs = append(envs, model.Environment{
			Name:       strings.TrimSpace(parts[0]),
			URL:        strings.TrimSpace(parts[1]),
			BackendURL: strings.TrimSpace(parts[2]),
		})
	}
	return envs
}
