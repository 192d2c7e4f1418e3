package scoring

// skillSynonyms maps canonical skill names to common variants seen in
// résumés and job requirements. Lookups are symmetric: two names are
// synonymous if one is the canonical form of the other, or both are
// variants of the same canonical form.
var skillSynonyms = map[string][]string{
	"javascript": {"js", "node.js", "nodejs"},
	"typescript": {"ts"},
	"python":     {"py"},
	"golang":     {"go"},
	"react":      {"reactjs", "react.js"},
	"angular":    {"angularjs"},
	"vue":        {"vuejs", "vue.js"},
	"aws":        {"amazon web services"},
	"gcp":        {"google cloud platform"},
	"azure":      {"microsoft azure"},
	"kubernetes": {"k8s"},
	"postgresql": {"postgres"},
	"mongodb":    {"mongo"},
}

// synonymousSkills reports whether two lowercased skill names refer to the
// same technology via the synonym table.
func synonymousSkills(a, b string) bool {
	for canonical, variants := range skillSynonyms {
		aHit := a == canonical || containsString(variants, a)
		bHit := b == canonical || containsString(variants, b)
		if aHit && bHit {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
