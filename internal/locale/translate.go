package locale

// Pick returns the text matching the request language, defaulting to Turkish.
func Pick(language, english, turkish string) string {
	if NormalizeLanguage(language) == LanguageEnglish {
		if english != "" {
			return english
		}
		return turkish
	}
	if turkish != "" {
		return turkish
	}
	return english
}

type label struct {
	en string
	tr string
}

var prayerLabels = map[string]label{
	"Fajr":    {en: "Fajr", tr: "İmsak"},
	"Dhuhr":   {en: "Dhuhr", tr: "Öğle"},
	"Asr":     {en: "Asr", tr: "İkindi"},
	"Maghrib": {en: "Maghrib", tr: "Akşam"},
	"Isha":    {en: "Isha", tr: "Yatsı"},
}

var blockLabels = map[string]label{
	"Fajr_Dhuhr":   {en: "Fajr — Dhuhr", tr: "İmsak — Öğle"},
	"Dhuhr_Asr":    {en: "Dhuhr — Asr", tr: "Öğle — İkindi"},
	"Asr_Maghrib":  {en: "Asr — Maghrib", tr: "İkindi — Akşam"},
	"Maghrib_Isha": {en: "Maghrib — Isha", tr: "Akşam — Yatsı"},
	"Isha_Fajr":    {en: "Isha — Fajr", tr: "Yatsı — İmsak"},
}

// PrayerName returns the display name of a canonical prayer key. Unknown keys
// are returned unchanged.
func PrayerName(language, key string) string {
	if l, ok := prayerLabels[key]; ok {
		return Pick(language, l.en, l.tr)
	}
	return key
}

// BlockLabel returns the display label of a prayer block key such as "Dhuhr_Asr".
func BlockLabel(language, key string) string {
	if l, ok := blockLabels[key]; ok {
		return Pick(language, l.en, l.tr)
	}
	return key
}
