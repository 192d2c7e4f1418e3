package parsing

import "strings"

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"nodejs":     "Node.js",
	"node.js":    "Node.js",
	"node":       "Node.js",
	"reactjs":    "React",
	"react.js":   "React",
	"vuejs":      "Vue",
	"vue.js":     "Vue",
	"k8s":        "Kubernetes",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"mongo":      "MongoDB",
	"mongodb":    "MongoDB",
	"aws":        "AWS",
	"gcp":        "GCP",
	"sql":        "SQL",
	"html":       "HTML",
	"css":        "CSS",
	"c#":         "C#",
	"c++":        "C++",
}

// NormalizeSkillName trims a raw skill token and maps known variants to
// their canonical form. Unknown multi-word names pass through unchanged;
// unknown single words are title-cased.
func NormalizeSkillName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}

	if canonical, ok := skillNormalizations[strings.ToLower(name)]; ok {
		return canonical
	}

	if strings.Contains(name, " ") {
		return name
	}

	// Single all-lowercase words get a leading capital; mixed case is
	// assumed intentional (iOS, jQuery).
	if name == strings.ToLower(name) {
		return strings.ToUpper(name[:1]) + name[1:]
	}
	return name
}
