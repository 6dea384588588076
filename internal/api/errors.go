package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/recipeshare/backend/internal/logging"
	"github.com/pageza/recipeshare/backend/internal/service"
)

const (
	msgNotFound       = "Not found."
	msgForbidden      = "You do not have permission to perform this action."
	msgNoActiveUser   = "No active account found with the given credentials"
	msgTokenInvalid   = "Token is invalid or expired"
	msgActivationFail = "Activation link is invalid or has expired"
	msgInternal       = "Internal Server Error"
)

func validationResponse(fields map[string][]string) gin.H {
	return gin.H{"error": "validation failed", "fields": fields}
}

// respondError maps a service error onto a status code and JSON body.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, validationResponse(verr.Fields))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": msgForbidden})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInactiveAccount):
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgNoActiveUser})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgTokenInvalid})
	case errors.Is(err, service.ErrInvalidActivation):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgActivationFail})
	case errors.Is(err, service.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
	default:
		logging.Ctx(c.Request.Context()).Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	}
}

// respondBindError reports request body problems per field.
func respondBindError(c *gin.Context, err error) {
	fields := map[string][]string{}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			name := fieldPath(fe)
			fields[name] = append(fields[name], fieldMessage(fe))
		}
	case errors.As(err, &typeErr):
		name := typeErr.Field
		if name == "" {
			name = service.NonFieldErrors
		}
		fields[name] = append(fields[name], fmt.Sprintf("Expected a %s.", friendlyType(typeErr.Type.Kind().String())))
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		fields[service.NonFieldErrors] = []string{"Malformed JSON body."}
	default:
		fields[service.NonFieldErrors] = []string{err.Error()}
	}

	c.JSON(http.StatusBadRequest, validationResponse(fields))
}

// fieldPath drops the struct name from the namespace: RecipeRequest.ingredients[0].unit -> ingredients[0].unit
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "unit", "timeunit":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	default:
		return "Invalid value."
	}
}

func friendlyType(kind string) string {
	switch kind {
	case "uint", "uint8", "uint16", "uint32", "uint64", "int", "int8", "int16", "int32", "int64":
		return "number"
	case "slice":
		return "list"
	default:
		return kind
	}
}

// parseID reads a positive integer path parameter, answering 404 otherwise.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
		return 0, false
	}
	return uint(id), true
}

// queryID parses an optional positive integer query parameter.
func queryID(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, validationResponse(map[string][]string{name: {"Enter a valid id."}}))
		return nil, false
	}
	v := uint(id)
	return &v, true
}
