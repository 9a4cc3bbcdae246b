// Package respond writes the JSON envelopes used by every API handler.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/inkboardhq/inkboard/internal/app/system/apperr"
	"go.uber.org/zap"
)

// JSON writes payload with the given status code.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Message writes a {"message": ...} body, the shape most mutations return.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Error converts err into the standard error envelope. Anything that is not
// an *apperr.Error is treated as an internal fault; server faults are logged
// with their cause, which never reaches the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apperr.Error
	if !errors.As(err, &apiErr) {
		apiErr = apperr.Internal(err)
	}
	if !apiErr.ClientFault() {
		zap.L().Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("code", apiErr.Code),
			zap.Error(apiErr.Cause))
	}
	JSON(w, apiErr.HTTPStatus, apiErr)
}
