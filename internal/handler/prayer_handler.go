package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gito/internal/db"
	"github.com/gito/internal/locale"
	"github.com/gito/internal/prayer"
	"github.com/gito/internal/service"
)

type prayerLogRequest struct {
	Prayer    string `json:"prayer"`
	Date      string `json:"date"`
	Completed *bool  `json:"completed"`
}

type prayerItem struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Time      string `json:"time"`
	IsPast    bool   `json:"is_past"`
	IsNext    bool   `json:"is_next"`
	Completed bool   `json:"completed"`
}

type blockItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type countdownItem struct {
	Hours    int    `json:"hours"`
	Minutes  int    `json:"minutes"`
	Seconds  int    `json:"seconds"`
	Next     string `json:"next"`
	NextName string `json:"next_name"`
}

// GetPrayers returns the day's schedule with classification and countdown.
// Authenticated callers also receive their logs for that day.
func (a *API) GetPrayers(c *gin.Context) {
	now := a.now()
	dateStr := a.dateQuery(c, "date")
	date, err := time.ParseInLocation(db.DateLayout, dateStr, now.Location())
	if err != nil {
		respondError(c, http.StatusBadRequest, "Geçersiz tarih")
		return
	}

	userID := currentUserID(c)
	city, country := strings.TrimSpace(c.Query("city")), strings.TrimSpace(c.Query("country"))
	if userID != "" && city == "" {
		user, err := a.users.Get(c.Request.Context(), userID)
		switch {
		case err == nil:
			city, country = user.City, user.Country
		case !errors.Is(err, service.ErrUserNotFound):
			c.Error(err)
			respondError(c, http.StatusInternalServerError, "Kullanıcı bilgisi okunamadı")
			return
		}
	}

	result := a.schedules.FetchSchedule(c.Request.Context(), city, country, date)
	language := a.requestLocale(c).Language

	completed := map[string]bool{}
	var logs []gin.H
	if userID != "" {
		records, err := a.prayerLog.ListForDate(c.Request.Context(), userID, dateStr)
		if err != nil {
			c.Error(err)
			respondError(c, http.StatusInternalServerError, "Namaz kayıtları okunamadı")
			return
		}
		logs = make([]gin.H, 0, len(records))
		for _, r := range records {
			completed[r.Prayer] = r.Completed
			logs = append(logs, prayerLogToPayload(r))
		}
	}

	statuses := prayer.Classify(result.Schedule, now)
	prayers := make([]prayerItem, 0, len(statuses))
	for _, st := range statuses {
		prayers = append(prayers, prayerItem{
			Key:       string(st.Name),
			Name:      locale.PrayerName(language, string(st.Name)),
			Time:      st.Time.String(),
			IsPast:    st.IsPast,
			IsNext:    st.IsNext,
			Completed: completed[string(st.Name)],
		})
	}

	blocks := make([]blockItem, 0, len(prayer.Blocks))
	for _, b := range prayer.Blocks {
		start, end := b.Bounds()
		blocks = append(blocks, blockItem{
			Key:   string(b),
			Label: locale.BlockLabel(language, string(b)),
			Color: b.Color(),
			Start: result.Schedule.Time(start).String(),
			End:   result.Schedule.Time(end).String(),
		})
	}

	current := prayer.CurrentBlock(result.Schedule, now)
	countdown := prayer.TimeUntilNext(result.Schedule, now)

	payload := gin.H{
		"date":     dateStr,
		"is_today": dateStr == now.Format(db.DateLayout),
		"city":     result.City,
		"country":  result.Country,
		"source":   result.Source,
		"times":    result.Schedule.Map(),
		"prayers":  prayers,
		"blocks":   blocks,
		"current_block": blockItem{
			Key:   string(current),
			Label: locale.BlockLabel(language, string(current)),
			Color: current.Color(),
		},
		"countdown": countdownItem{
			Hours:    countdown.Hours,
			Minutes:  countdown.Minutes,
			Seconds:  countdown.Seconds,
			Next:     string(countdown.Next),
			NextName: locale.PrayerName(language, string(countdown.Next)),
		},
	}
	if userID != "" {
		payload["logs"] = logs
	}

	c.JSON(http.StatusOK, payload)
}

// LogPrayer marks a prayer as performed or not for a day.
func (a *API) LogPrayer(c *gin.Context) {
	var req prayerLogRequest
	if !bindJSON(c, &req, "Geçersiz istek") {
		return
	}

	completedFlag := true
	if req.Completed != nil {
		completedFlag = *req.Completed
	}
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = a.now().Format(db.DateLayout)
	}

	record, err := a.prayerLog.Upsert(c.Request.Context(), currentUserID(c), service.PrayerLogInput{
		Prayer:    req.Prayer,
		Date:      date,
		Completed: completedFlag,
	})
	if err != nil {
		handlePrayerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"log": prayerLogToPayload(*record)})
}

func prayerLogToPayload(record db.PrayerLog) gin.H {
	return gin.H{
		"id":        record.ID,
		"prayer":    record.Prayer,
		"date":      record.Date,
		"completed": record.Completed,
	}
}

func handlePrayerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidPrayer):
		respondError(c, http.StatusBadRequest, "Geçersiz namaz")
	case errors.Is(err, service.ErrInvalidDate):
		respondError(c, http.StatusBadRequest, "Geçersiz tarih")
	default:
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "İşlem başarısız")
	}
}
