// Package adapterprofile embeds per-language default invocation settings
// for the extractor subprocess, the way the teacher's languages package
// embedded per-language capability pattern YAML: adding support for a new
// language is dropping in a new *.yaml file here, not touching Go code.
package adapterprofile

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var profilesFS embed.FS

// Profile carries the manifest defaults for one language's extractor.
type Profile struct {
	Language                       string `yaml:"language"`
	DefaultNamespace               string `yaml:"default_namespace"`
	TransformDepth                 int    `yaml:"transform_depth"`
	TransformMaxCollectionElements int    `yaml:"transform_max_collection_elements"`
}

// Load reads the embedded profile for language (lowercase, e.g. "java",
// "go", "python").
func Load(language string) (*Profile, error) {
	data, err := profilesFS.ReadFile("profiles/" + language + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("adapterprofile: no profile for %q: %w", language, err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("adapterprofile: parse %q: %w", language, err)
	}
	return &p, nil
}
