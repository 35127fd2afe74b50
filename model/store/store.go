package store

import (
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model"
	storePostgres "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/store/postgres"
)

// GetStore - Should decide on which model implementation to use by
// configuration and return the store.
func GetStore() model.Model {
	var store model.Model
	store = &storePostgres.Postgres{}
	return store
}
