package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

const (
	httpHeaderAuthorization = "Authorization"
	httpHeaderContentType   = "Content-Type"

	contentTypeJSON = "application/json"
)

func writeHTTP(w http.ResponseWriter, format string, args ...interface{}) {
	resp := fmt.Sprintf(format, args...)
	if _, err := w.Write([]byte(resp)); err != nil {
		logrus.Errorf("error writing response: %v", err)
	}
}

func replyStatusCode(w http.ResponseWriter, code int) {
	w.WriteHeader(code)
	writeHTTP(w, http.StatusText(code))
}

func replyError(w http.ResponseWriter, code int, err error) {
	logrus.WithError(err).Errorf("HTTP status code %d", code)
	w.WriteHeader(code)
	writeHTTP(w, err.Error())
}

func replyJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set(httpHeaderContentType, contentTypeJSON)
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("error encoding response: %v", err)
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("error unmarshaling payload: %w", err)
	}
	return nil
}
