package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError emits the same {success:false, error} envelope the handlers
// use, so middleware rejections look identical to handler rejections.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
