package techstack

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
	"github.com/saral-digital/ops-dashboard/model"
)

type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Engines         struct {
		Node string `json:"node"`
	} `json:"engines"`
}

var frontendPackages = []struct {
	dependency string
	name       string
	kind       string
}{
	{"react", "React", typeFramework},
	{"next", "Next.js", typeFramework},
	{"typescript", "TypeScript", typeRuntime},
	{"vite", "Vite", typeFramework},
	{"@angular/core", "Angular", typeFramework},
	{"vue", "Vue", typeFramework},
}

// essentialPackages maps the NuGet packages worth reporting to display names
var essentialPackages = map[string]string{
	"Microsoft.EntityFrameworkCore":         "EF Core",
	"Npgsql.EntityFrameworkCore.PostgreSQL": "PostgreSQL",
	"Serilog":                               "Serilog",
	"Swashbuckle.AspNetCore":                "Swagger",
}

var (
	fromLine        = regexp.MustCompile(`(?m)^FROM\s+(\S+)`)
	xmlComment      = regexp.MustCompile(`(?s)<!--.*?-->`)
	targetFramework = regexp.MustCompile(`<TargetFramework>([^<]+)</TargetFramework>`)
	packageVersion  = regexp.MustCompile(`<PackageVersion\s+Include="([^"]+)"\s+Version="([^"]+)"`)
)

// ParsePackageJSON reports the known frameworks of a package.json and its node
// engine. devDependencies override dependencies of the same name.
func ParsePackageJSON(content string) ([]model.TechStackItem, error) {
	var pkg packageJSON
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}

	deps := make(map[string]string, len(pkg.Dependencies)+len(pkg.DevDependencies))
	for name, version := range pkg.Dependencies {
		deps[name] = version
	}
	for name, version := range pkg.DevDependencies {
		deps[name] = version
	}

	var items []model.TechStackItem
	for _, known := range frontendPackages {
		if version, ok := deps[known.dependency]; ok && version != "" {
			items = append(items, model.TechStackItem{Category: categoryFrontend, Name: known.name, Version: version, Type: known.kind})
		}
	}
	if pkg.Engines.Node != "" {
		items = append(items, model.TechStackItem{Category: categoryFrontend, Name: "Node.js", Version: pkg.Engines.Node, Type: typeRuntime})
	}
	return items, nil
}

// ParseDockerfile reports the base image of every FROM line. Images given as
// build arguments are skipped and a missing tag reads as "latest".
func ParseDockerfile(content string) []model.TechStackItem {
	var items []model.TechStackItem
	for _, match := range fromLine.FindAllStringSubmatch(content, -1) {
		image := match[1]
		if strings.HasPrefix(image, "$") {
			continue
		}

		name, version, _ := strings.Cut(image, ":")
		if version == "" {
			version = "latest"
		}
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
		items = append(items, model.TechStackItem{Category: categoryInfrastructure, Name: name, Version: version, Type: typeImage})
	}
	return items
}

// ParseBuildProps reports the .NET target framework, ignoring commented-out ones
func ParseBuildProps(content string) []model.TechStackItem {
	match := targetFramework.FindStringSubmatch(xmlComment.ReplaceAllString(content, ""))
	if match == nil {
		return nil
	}
	return []model.TechStackItem{{Category: categoryBackend, Name: ".NET", Version: strings.TrimSpace(match[1]), Type: typeRuntime}}
}

// ParsePackagesProps reports the essential centrally managed NuGet packages
func ParsePackagesProps(content string) []model.TechStackItem {
	var items []model.TechStackItem
	for _, match := range packageVersion.FindAllStringSubmatch(content, -1) {
		name, ok := essentialPackages[match[1]]
		if !ok {
			continue
		}
		items = append(items, model.TechStackItem{Category: categoryBackend, Name: name, Version: match[2], Type: typeDependency})
	}
	return items
}
