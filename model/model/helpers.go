package model

import (
	"encoding/json"

	"github.com/jinzhu/gorm/dialects/postgres"
)

func jsonbArrayLen(value *postgres.Jsonb) int {
	if value == nil || len(value.RawMessage) == 0 {
		return 0
	}

	var items []interface{}
	if err := json.Unmarshal(value.RawMessage, &items); err != nil {
		return 0
	}
	return len(items)
}
