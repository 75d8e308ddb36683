package osv

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/saral-digital/ops-dashboard/model"
)

var ecosystems = map[string]string{
	"React":      "npm",
	"TypeScript": "npm",
	"Vite":       "npm",
	"Node.js":    "npm",
	"Next.js":    "npm",
	"Vue":        "npm",
	"Angular":    "npm",
	".NET":       "NuGet",
	"EF Core":    "NuGet",
	"PostgreSQL": "NuGet",
	"Serilog":    "NuGet",
	"Swagger":    "NuGet",
}

var packageNames = map[string]string{
	"React":      "react",
	"TypeScript": "typescript",
	"Vite":       "vite",
	"Node.js":    "node",
	"Next.js":    "next",
	"Vue":        "vue",
	"Angular":    "@angular/core",
	".NET":       "Microsoft.NETCore.App",
	"EF Core":    "Microsoft.EntityFrameworkCore",
	"PostgreSQL": "Npgsql.EntityFrameworkCore.PostgreSQL",
	"Serilog":    "Serilog",
	"Swagger":    "Swashbuckle.AspNetCore",
}

var (
	rangeOperators = regexp.MustCompile(`[\^~>=<]`)
	imageVariants  = regexp.MustCompile(`-alpine|-bullseye|-jammy`)
)

// Scan queries OSV for every non-infrastructure item of the tech stack. Items
// with no known ecosystem, or whose query fails, are reported as unknown.
func (s *service) Scan(ctx context.Context, stack []model.TechStackItem) *model.SecurityScan {
	sdkVersion := dotnetSDKVersion(stack)
	results := []model.VulnResult{}

	for _, item := range stack {
		if item.Category == "Infrastructure" {
			continue
		}

		ecosystem, known := ecosystems[item.Name]
		if !known {
			results = append(results, unknownResult(item, "unknown"))
			continue
		}

		pkg, version := QueryTarget(item, sdkVersion)
		vulns, err := s.Query(ctx, pkg, version, ecosystem)
		if err != nil {
			s.logger.Warn().Err(err).Str("package", item.Name).Msg("OSV query failed")
			results = append(results, unknownResult(item, ecosystem))
			continue
		}

		displayVersion := item.Version
		if item.Name == ".NET" && sdkVersion != "" {
			displayVersion += " (SDK " + sdkVersion + ")"
		}
		results = append(results, model.VulnResult{
			Package:         item.Name,
			Version:         displayVersion,
			Ecosystem:       ecosystem,
			Vulnerabilities: vulns,
			Status:          Status(vulns),
		})
	}

	return &model.SecurityScan{
		Results:   results,
		Summary:   Summarize(results),
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
}

// QueryTarget resolves the OSV package name and a clean version for an item.
// A .NET target framework such as net8.0 is resolved to the SDK image version
// when one is known.
func QueryTarget(item model.TechStackItem, sdkVersion string) (string, string) {
	pkg, ok := packageNames[item.Name]
	if !ok {
		pkg = item.Name
	}
	version := strings.TrimSpace(rangeOperators.ReplaceAllString(item.Version, ""))

	if item.Name == ".NET" && strings.HasPrefix(version, "net") {
		if sdkVersion != "" {
			version = sdkVersion
		} else {
			version = strings.TrimPrefix(version, "net") + ".0"
		}
	}
	return pkg, version
}

func dotnetSDKVersion(stack []model.TechStackItem) string {
	for _, item := range stack {
		if item.Category == "Infrastructure" && item.Name == "sdk" {
			return strings.TrimSpace(imageVariants.ReplaceAllString(item.Version, ""))
		}
	}
	return ""
}

func unknownResult(item model.TechStackItem, ecosystem string) model.VulnResult {
	return model.VulnResult{
		Package:         item.Name,
		Version:         item.Version,
		Ecosystem:       ecosystem,
		Vulnerabilities: []model.Vulnerability{},
		Status:          model.VulnStatusUnknown,
	}
}

// Summarize counts results per status
func Summarize(results []model.VulnResult) model.ScanSummary {
	summary := model.ScanSummary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case model.VulnStatusCritical:
			summary.Critical++
		case model.VulnStatusWarning:
			summary.Warning++
		case model.VulnStatusSafe:
			summary.Safe++
		default:
			summary.Unknown++
		}
	}
	return summary
}
