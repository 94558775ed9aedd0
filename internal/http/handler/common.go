package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/ecostock/ecostock-api/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// maxBodyBytes bounds request bodies; every payload here is a small form
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Optional values are validated as their underlying value, nil when absent
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if n, ok := field.Interface().(domain.NullableInt64); ok && n.Valid {
			return n.Int64
		}
		return nil
	}, domain.NullableInt64{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if n, ok := field.Interface().(domain.NullableTime); ok && n.Valid {
			return n.Time
		}
		return nil
	}, domain.NullableTime{})

	return v
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError sends the {"error": "..."} body every endpoint uses
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.ErrorResponse{Error: message})
}

// respondValidationError sends a 400 with a summary message and, when the
// failure came from the validator, one message per offending field
func respondValidationError(w http.ResponseWriter, message string, err error) {
	resp := domain.ErrorResponse{Error: message}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		resp.Fields = make(map[string]string, len(ve))
		for _, fe := range ve {
			resp.Fields[fe.Field()] = formatValidationError(fe)
		}
	}

	respondJSON(w, http.StatusBadRequest, resp)
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("Máximo de %s caracteres", fe.Param())
	case "gte":
		return fmt.Sprintf("Deve ser maior ou igual a %s", fe.Param())
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// hasFieldError reports whether a validation failure involves the given field and tag
func hasFieldError(err error, field, tag string) bool {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return false
	}
	for _, fe := range ve {
		if fe.Field() == field && fe.Tag() == tag {
			return true
		}
	}
	return false
}

// onlyFieldErrors reports whether every validation failure is on the given field
func onlyFieldErrors(err error, field string) bool {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return false
	}
	for _, fe := range ve {
		if fe.Field() != field {
			return false
		}
	}
	return true
}

// decodeJSON reads a JSON request body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// parseID reads the numeric {id} path parameter. It writes a 400 and
// returns false when the parameter is not a positive integer.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "ID inválido")
		return 0, false
	}
	return id, true
}
