package postgres

import (
	"net/http"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"

	log "github.com/sirupsen/logrus"
)

// Postgres implements the model.Model store interface on the connection
// held by config.Services.
type Postgres struct{}

func (store *Postgres) HealthCheck() int {
	db := C.GetServices().Db

	if err := db.DB().Ping(); err != nil {
		log.WithError(err).Error("Database ping failed on health check.")
		return http.StatusInternalServerError
	}
	return http.StatusOK
}
