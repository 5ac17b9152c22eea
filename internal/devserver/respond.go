package devserver

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/siteadmin/internal/common"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set(common.ContentTypeHeaderName, common.JSONContentType+"; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func created(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

func badRequest(w http.ResponseWriter, message string) { fail(w, http.StatusBadRequest, message) }

func unauthorized(w http.ResponseWriter, message string) { fail(w, http.StatusUnauthorized, message) }

func notFound(w http.ResponseWriter, what string) { fail(w, http.StatusNotFound, what+" not found") }
