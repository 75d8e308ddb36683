package osv

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/saral-digital/ops-dashboard/model"
)

type service struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	now        func() time.Time
}

type OSVService interface {
	Query(ctx context.Context, pkg, version, ecosystem string) ([]model.Vulnerability, error)
	Scan(ctx context.Context, stack []model.TechStackItem) *model.SecurityScan
}

const (
	defaultBaseURL = "https://api.osv.dev"
	source         = "osv"
)

type queryRequest struct {
	Package queryPackage `json:"package"`
	Version string       `json:"version"`
}

type queryPackage struct {
	Name      string `json:"name"`
	Ecosystem string `json:"ecosystem"`
}

type queryResponse struct {
	Vulns []vuln `json:"vulns"`
}

type vuln struct {
	ID               string     `json:"id"`
	Summary          string     `json:"summary"`
	Details          string     `json:"details"`
	Severity         []severity `json:"severity"`
	Affected         []affected `json:"affected"`
	DatabaseSpecific struct {
		Severity string `json:"severity"`
	} `json:"database_specific"`
}

type severity struct {
	Type  string `json:"type"`
	Score string `json:"score"`
}

type affected struct {
	Ranges []struct {
		Events []struct {
			Introduced string `json:"introduced,omitempty"`
			Fixed      string `json:"fixed,omitempty"`
		} `json:"events"`
	} `json:"ranges"`
}
