package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// ParamParser converts a raw query parameter into a typed value.
type ParamParser[T any] func(raw string) (T, error)

// ParseBool is a ParamParser for boolean query parameters ("true", "false", "1", "0", ...).
func ParseBool(raw string) (bool, error) {
	return strconv.ParseBool(raw)
}

// ParseOptional reads an optional query parameter. It returns nil when the parameter is absent
// and responds with 400 and false when the value cannot be parsed.
func ParseOptional[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, key string, parse ParamParser[T]) (*T, bool) {
	if !r.URL.Query().Has(key) {
		return nil, true
	}
	raw := r.URL.Query().Get(key)
	value, err := parse(raw)
	if err != nil {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s parameter: %s", key, raw))
		return nil, false
	}
	return &value, true
}
