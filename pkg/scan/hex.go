package scan

import "strings"

// Hexagonal architecture roles returned by [HexLayer].
const (
	LayerDriving     = "driving"
	LayerDomain      = "domain"
	LayerApplication = "application"
	LayerDriven      = "driven"
	LayerDefault     = "default"
)

// hexRules are checked in order; the first keyword found wins.
var hexRules = []struct {
	layer    string
	keywords []string
}{
	{LayerDriving, []string{"component", "view", "page"}},
	{LayerDomain, []string{"domain", "entities", "core"}},
	{LayerApplication, []string{"composable", "hook", "service"}},
	{LayerDriven, []string{"adapter", "api", "infra"}},
}

// HexLayer classifies path by case-insensitive keyword search. Paths
// matching nothing are [LayerDefault].
func HexLayer(path string) string {
	lower := strings.ToLower(path)
	for _, rule := range hexRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.layer
			}
		}
	}
	return LayerDefault
}
