// ABOUTME: Exports run summaries as a YAML document.
// ABOUTME: Uses gopkg.in/yaml.v3; run order is the order runs first appeared in the trace.
package trace

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YamlTrace is the top-level exported document.
type YamlTrace struct {
	Runs      int          `yaml:"runs"`
	Failed    int          `yaml:"failed"`
	Summaries []RunSummary `yaml:"summaries"`
}

// ExportYAML renders summaries as YAML.
func ExportYAML(summaries []RunSummary) (string, error) {
	doc := YamlTrace{Runs: len(summaries), Summaries: summaries}
	if doc.Summaries == nil {
		doc.Summaries = []RunSummary{}
	}
	for _, s := range summaries {
		if Failed(s) {
			doc.Failed++
		}
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}
	return string(data), nil
}

// Failed reports whether a run ended in anything but success.
func Failed(s RunSummary) bool {
	switch s.Outcome {
	case "ok", OutcomeTicksOnly:
		return false
	}
	return true
}
