package handler

import (
	"encoding/json"
	"net/http"
)

// Health reports liveness for load balancers and the serverless router.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	response := map[string]interface{}{
		"status":  "ok",
		"message": "Vitalimes Catalog API",
		"path":    r.URL.Path,
	}

	json.NewEncoder(w).Encode(response)
}
