package profile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile describes the author for the CV and performance narratives. All
// fields are optional; the pipeline works without a profile.
type Profile struct {
	Name    string   `yaml:"name"`
	Title   string   `yaml:"title"`
	Years   int      `yaml:"years"`
	Skills  []string `yaml:"skills"`
	Links   []string `yaml:"links"`
	Summary string   `yaml:"summary"`
}

// Load reads a YAML profile from path. An empty path returns nil without
// error.
func Load(path string) (*Profile, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	return &p, nil
}

// PromptSection renders the profile as prompt context lines.
func (p *Profile) PromptSection() string {
	var b strings.Builder
	if p.Name != "" {
		fmt.Fprintf(&b, "name: %s\n", p.Name)
	}
	if p.Title != "" {
		fmt.Fprintf(&b, "title: %s\n", p.Title)
	}
	if p.Years > 0 {
		fmt.Fprintf(&b, "years of experience: %d\n", p.Years)
	}
	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, "skills: %s\n", strings.Join(p.Skills, ", "))
	}
	if len(p.Links) > 0 {
		fmt.Fprintf(&b, "links: %s\n", strings.Join(p.Links, ", "))
	}
	if p.Summary != "" {
		fmt.Fprintf(&b, "summary: %s\n", p.Summary)
	}
	return b.String()
}
