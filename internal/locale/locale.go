package locale

import "strings"

const (
	LanguageTurkish = "tr"
	LanguageEnglish = "en"
)

type Preference struct {
	Language string
	Locale   string
	HTMLLang string
}

func NormalizeLanguage(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "tr") {
		return LanguageTurkish
	}
	if strings.HasPrefix(trimmed, "en") {
		return LanguageEnglish
	}
	return ""
}

func LanguageFromCountryCode(code string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return ""
	}
	if trimmed == "TR" {
		return LanguageTurkish
	}
	return LanguageEnglish
}

// LanguageFromAcceptLanguage returns the first supported language listed in
// an Accept-Language header, honouring the client's ordering.
func LanguageFromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(part, ";")
		if normalized := NormalizeLanguage(tag); normalized != "" {
			return normalized
		}
	}
	return ""
}

func PreferenceForLanguage(language string) Preference {
	normalized := NormalizeLanguage(language)
	if normalized == LanguageEnglish {
		return Preference{Language: LanguageEnglish, Locale: "en_US", HTMLLang: "en-US"}
	}
	return Preference{Language: LanguageTurkish, Locale: "tr_TR", HTMLLang: "tr-TR"}
}
