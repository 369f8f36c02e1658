package suggestion

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplates []byte

// Template is one canned suggestion.
type Template struct {
	Suggestion string  `yaml:"suggestion"`
	Command    string  `yaml:"command"`
	FundID     string  `yaml:"fund_id"`
	Confidence float64 `yaml:"confidence"`
}

// TemplateSet holds the answer for users without recent activity and the rotating responses.
type TemplateSet struct {
	Welcome   Template   `yaml:"welcome"`
	Responses []Template `yaml:"responses"`
}

// LoadTemplates reads a template set from path, or the embedded default when path is empty.
func LoadTemplates(path string) (*TemplateSet, error) {
	data := defaultTemplates
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read templates %s: %w", path, err)
		}
		data = b
	}
	return ParseTemplates(data)
}

// ParseTemplates decodes and validates a YAML template set.
func ParseTemplates(data []byte) (*TemplateSet, error) {
	var set TemplateSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	if err := set.Welcome.validate(); err != nil {
		return nil, fmt.Errorf("welcome template: %w", err)
	}
	if len(set.Responses) == 0 {
		return nil, fmt.Errorf("template set has no responses")
	}
	for i, t := range set.Responses {
		if err := t.validate(); err != nil {
			return nil, fmt.Errorf("response template %d: %w", i, err)
		}
	}

	return &set, nil
}

func (t Template) validate() error {
	if strings.TrimSpace(t.Suggestion) == "" {
		return fmt.Errorf("suggestion is required")
	}
	if strings.TrimSpace(t.Command) == "" {
		return fmt.Errorf("command is required")
	}
	if t.Confidence < 0 || t.Confidence > 1 {
		return fmt.Errorf("confidence %v out of range [0,1]", t.Confidence)
	}
	return nil
}

// pick returns the response for a user with count recent events.
func (s *TemplateSet) pick(count int) Template {
	n := len(s.Responses)
	idx := count % n
	if idx > n-1 {
		idx = n - 1
	}
	return s.Responses[idx]
}
