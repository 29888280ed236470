package search

var Synonyms = map[string][]string{
	"frontend":    {"front end", "full stack", "ui developer"},
	"backend":     {"back end", "full stack", "server"},
	"fullstack":   {"full stack", "web developer"},
	"ux":          {"ui/ux", "user experience", "designer"},
	"devops":      {"dev ops", "infrastructure", "cloud"},
	"data":        {"data scientist", "analytics", "machine learning"},
	"ml":          {"machine learning", "data scientist"},
	"pm":          {"product manager", "product management"},
	"marketing":   {"digital marketing", "seo", "campaign"},
	"writer":      {"content writer", "copywriting", "content"},
	"analyst":     {"business analyst", "data analyst", "analytics"},
	"ui designer": {"ui/ux designer", "visual designer", "designer"},
}

func GetSynonyms(query string) []string {
	if query == "" {
		return []string{}
	}
	if v, ok := Synonyms[query]; ok {
		out := make([]string, 0, len(v))
		out = append(out, v...)
		return out
	}
	return []string{}
}
