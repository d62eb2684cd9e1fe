package search

// Synonyms are keyed by folded query text. Job titles on the Moroccan market
// mix French and English, so most entries bridge the two.
var Synonyms = map[string][]string{
	"developpeur":         {"developer", "dev", "ingenieur logiciel"},
	"developer":           {"developpeur", "dev"},
	"ingenieur":           {"engineer", "ingenieur logiciel"},
	"engineer":            {"ingenieur"},
	"data analyst":        {"analyste de donnees", "analyste data", "business intelligence"},
	"analyste de donnees": {"data analyst", "analyste data"},
	"data scientist":      {"scientifique des donnees", "machine learning"},
	"devops":              {"sre", "ingenieur cloud", "platform engineer"},
	"frontend":            {"front end", "developpeur front", "integrateur"},
	"backend":             {"back end", "developpeur back"},
	"fullstack":           {"full stack", "developpeur full stack"},
	"chef de projet":      {"project manager", "scrum master"},
	"stagiaire":           {"stage", "intern", "pfe"},
	"commercial":          {"business developer", "sales"},
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
