package http

import (
	"encoding/json"
	"net/http"
)

// GET /meta — the default appraisal cycle clients should open with.
func MetaHandler(appraisalYear int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"appraisal_year": appraisalYear})
	}
}
