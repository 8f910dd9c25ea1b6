// Package respond writes JSON responses in the API envelope shared by all
// handlers.
package respond

import (
	"encoding/json"
	"log"
	"net/http"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("respond: encode response: %v", err)
	}
}

// Error writes a JSON error body with a stable machine-readable code.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// Data wraps v under a "data" key, the success envelope for auth flows.
func Data(w http.ResponseWriter, status int, v interface{}) {
	JSON(w, status, map[string]interface{}{"data": v})
}
