package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gito/internal/locale"
)

const (
	localeContextKey     = "__request_locale"
	languageCookieName   = "gito_lang"
	languageCookieMaxAge = 365 * 24 * 60 * 60
)

var countryHeaderCandidates = []string{
	"CF-IPCountry",
	"X-Geo-Country",
	"X-Forwarded-Country",
	"X-Country-Code",
}

// LocaleMiddleware resolves request language and sets headers for downstream caching.
func (a *API) LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		pref := a.requestLocale(c)
		c.Header("Content-Language", pref.HTMLLang)
		varyHeaders := append([]string{"Accept-Language"}, countryHeaderCandidates...)
		if readLanguageCookie(c) != "" || locale.NormalizeLanguage(c.Query("lang")) != "" {
			varyHeaders = append(varyHeaders, "Cookie")
		}
		appendVaryHeader(c, varyHeaders...)
		c.Next()
	}
}

func (a *API) requestLocale(c *gin.Context) locale.Preference {
	if cached, exists := c.Get(localeContextKey); exists {
		if pref, ok := cached.(locale.Preference); ok {
			return pref
		}
	}
	language, persist := resolveLanguage(c)
	pref := locale.PreferenceForLanguage(language)
	if persist {
		persistLanguage(c, pref.Language)
	}
	c.Set(localeContextKey, pref)
	return pref
}

// resolveLanguage checks ?lang=, the cookie, Accept-Language and then country
// headers. Only an explicit ?lang= is remembered.
func resolveLanguage(c *gin.Context) (string, bool) {
	if override := locale.NormalizeLanguage(c.Query("lang")); override != "" {
		return override, true
	}
	if cookie := readLanguageCookie(c); cookie != "" {
		return cookie, false
	}
	if fromHeader := locale.LanguageFromAcceptLanguage(c.GetHeader("Accept-Language")); fromHeader != "" {
		return fromHeader, false
	}
	if country := readCountryHeader(c); country != "" {
		return locale.LanguageFromCountryCode(country), false
	}
	return locale.LanguageTurkish, false
}

func readLanguageCookie(c *gin.Context) string {
	value, err := c.Cookie(languageCookieName)
	if err != nil {
		return ""
	}
	return locale.NormalizeLanguage(value)
}

func persistLanguage(c *gin.Context, language string) {
	normalized := locale.NormalizeLanguage(language)
	if normalized == "" {
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     languageCookieName,
		Value:    normalized,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureRequest(c),
		MaxAge:   languageCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecureRequest(c *gin.Context) bool {
	if c.Request != nil && c.Request.TLS != nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(c.GetHeader("X-Forwarded-Proto")), "https")
}

func readCountryHeader(c *gin.Context) string {
	for _, header := range countryHeaderCandidates {
		value := strings.TrimSpace(c.GetHeader(header))
		if value == "" {
			continue
		}
		candidate, _, _ := strings.Cut(value, ",")
		if candidate = strings.TrimSpace(candidate); candidate != "" {
			return candidate
		}
	}
	return ""
}

func appendVaryHeader(c *gin.Context, headers ...string) {
	existing := c.Writer.Header().Get("Vary")
	seen := make(map[string]struct{})
	order := make([]string, 0, len(headers))
	for _, token := range append(strings.Split(existing, ","), headers...) {
		trimmed := strings.TrimSpace(token)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		order = append(order, trimmed)
	}
	if len(order) > 0 {
		c.Header("Vary", strings.Join(order, ", "))
	}
}
