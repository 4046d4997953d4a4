package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"goteleportbridge/bridge"

	log "github.com/sirupsen/logrus"
)

var engine *bridge.Engine
var store bridge.Store

// Setup wires the handler package to the bridge core. Must run before the
// HTTP worker starts.
func Setup(e *bridge.Engine, s bridge.Store) {
	engine = e
	store = s
}

func responseJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func responsePlain(w http.ResponseWriter, data []byte, code int) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(code)
	w.Write(data)
}

func responseError(w http.ResponseWriter, err error, code int) {
	responseJSON(w, &APIResponse{
		Status:  "error",
		Message: err.Error(),
	}, code)
}

// decodeJSON reads and unmarshals the request body into dst, writing the
// error response itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %s", err.Error())
		responseJSON(w, &APIResponse{
			Status:  "error",
			Message: "Error reading request body",
		}, http.StatusBadRequest)
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		log.Printf("Error unmarshalling request body: %s", err.Error())
		responseJSON(w, &APIResponse{
			Status:  "error",
			Message: "Cannot unmarshal input JSON",
		}, http.StatusBadRequest)
		return false
	}

	return true
}
