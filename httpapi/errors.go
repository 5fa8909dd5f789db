package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jmgilman/vfs/vfserrors"
)

// errorResponse is the JSON envelope every failed request receives,
// carrying a machine-readable code alongside the message.
type errorResponse struct {
	Error string              `json:"error"`
	Code  vfserrors.ErrorCode `json:"code"`
}

// statusFor maps a vfserrors.ErrorCode to the HTTP status the server
// reports for it. Codes not explicitly listed fall through to 500.
func statusFor(code vfserrors.ErrorCode) int {
	switch code {
	case vfserrors.CodeReadOnly, vfserrors.CodeForbidden:
		return http.StatusForbidden
	case vfserrors.CodeNotFound:
		return http.StatusNotFound
	case vfserrors.CodeAlreadyExists:
		return http.StatusConflict
	case vfserrors.CodePathEmpty, vfserrors.CodePathInvalid, vfserrors.CodePathInvalidChars, vfserrors.CodePathDottedSegments:
		return http.StatusBadRequest
	case vfserrors.CodeNotSupported:
		return http.StatusUnprocessableEntity
	case vfserrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case vfserrors.CodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := vfserrors.GetCode(err)
	status := statusFor(code)
	s.logger.LogAttrs(r.Context(), slog.LevelWarn, "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("code", string(code)),
		slog.Any("err", err),
	)
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
