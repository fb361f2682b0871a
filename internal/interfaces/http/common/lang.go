package common

import (
	"net/http"
	"strings"

	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	"golang.org/x/text/language"
)

// French comes first so it wins when nothing matches.
var supportedLanguages = []language.Tag{language.French, language.English, language.Arabic}

var languageMatcher = language.NewMatcher(supportedLanguages)

// Language picks fr, en or ar from ?lang, then Accept-Language. French is the default.
func Language(r *http.Request) string {
	candidates := make([]string, 0, 2)
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" {
		candidates = append(candidates, lang)
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		candidates = append(candidates, header)
	}
	if len(candidates) == 0 {
		return domain.LangFR
	}
	_, index := language.MatchStrings(languageMatcher, candidates...)
	switch supportedLanguages[index] {
	case language.English:
		return domain.LangEN
	case language.Arabic:
		return domain.LangAR
	default:
		return domain.LangFR
	}
}
