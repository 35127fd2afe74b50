package postgres

import (
	"net/http"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"

	log "github.com/sirupsen/logrus"
)

const analyticsEventsDefaultLimit = 100

// TrackSignupEvent appends a funnel event. Callers fire these from
// goroutines and only ever log the returned code.
func (store *Postgres) TrackSignupEvent(event *model.SignupAnalytics) int {
	if event == nil || event.EventType == "" {
		log.Error("TrackSignupEvent failed. Missing event_type.")
		return http.StatusBadRequest
	}

	db := C.GetServices().Db
	if err := db.Create(event).Error; err != nil {
		log.WithError(err).WithField("event_type", event.EventType).
			Error("TrackSignupEvent failed.")
		return http.StatusInternalServerError
	}
	return http.StatusCreated
}

// GetAnalyticsSummary returns the most recent events with per-type totals
// aggregated over the whole table.
func (store *Postgres) GetAnalyticsSummary(limit int) (*model.AnalyticsSummary, int) {
	if limit <= 0 {
		limit = analyticsEventsDefaultLimit
	}

	db := C.GetServices().Db

	var events []model.SignupAnalytics
	if err := db.Order("created_at DESC").Limit(limit).Find(&events).Error; err != nil {
		log.WithError(err).Error("GetAnalyticsSummary failed on events.")
		return nil, http.StatusInternalServerError
	}

	rows, err := db.Model(&model.SignupAnalytics{}).
		Select("event_type, count(*) as count").Group("event_type").Rows()
	if err != nil {
		log.WithError(err).Error("GetAnalyticsSummary failed on counts.")
		return nil, http.StatusInternalServerError
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var eventType string
		var count int64
		if err := rows.Scan(&eventType, &count); err != nil {
			log.WithError(err).Error("GetAnalyticsSummary failed on scan.")
			return nil, http.StatusInternalServerError
		}
		counts[eventType] = count
	}

	return &model.AnalyticsSummary{Events: events, Counts: counts}, http.StatusFound
}
