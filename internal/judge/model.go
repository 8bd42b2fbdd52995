package judge

import "strings"

// DefaultModel is the judge used when none is configured.
const DefaultModel = "gpt-4o"

var deployments = map[string]string{
	"gpt-4o":  "gpt-4o_2024-08-06",
	"gpt-4.1": "gpt-4.1_2025-04-14",
	"gpt-5":   "gpt-5_2025-08-07",
}

// ResolveModel maps a short judge name to its pinned deployment. Unknown
// names are returned unchanged.
func ResolveModel(name string) string {
	if strings.TrimSpace(name) == "" {
		return deployments[DefaultModel]
	}
	if d, ok := deployments[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d
	}
	return name
}
