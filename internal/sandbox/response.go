package sandbox

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ems/internal/platform/validation"
)

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Warn("write json failed", zap.Error(err))
	}
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageBody{Message: message})
}

// failErr maps db and validation errors onto statuses.
func failErr(w http.ResponseWriter, err error, notFound string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		fail(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, ErrNotFound):
		fail(w, http.StatusNotFound, notFound)
	case errors.Is(err, ErrStale):
		fail(w, http.StatusPreconditionFailed, "Record was modified by someone else; reload and try again")
	case errors.Is(err, ErrConflict):
		fail(w, http.StatusConflict, conflictMessage(err))
	default:
		fail(w, http.StatusInternalServerError, "Internal server error")
	}
}

func conflictMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	if msg == "" {
		return "Conflict"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		fail(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// ifMatch reads the expected version from If-Match. Missing means no check.
func ifMatch(r *http.Request) int64 {
	raw := strings.TrimSpace(r.Header.Get("If-Match"))
	raw = strings.TrimPrefix(raw, "W/")
	raw = strings.Trim(raw, `"`)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
