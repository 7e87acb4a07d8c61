// Package validation hooks the request rules into gin's validator and turns
// binding failures into field level messages.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/gravadigital/eventos-api/internal/domain/common"
	"github.com/gravadigital/eventos-api/internal/services"
)

const tagRoomOrURL = "room_or_url"

var registerOnce sync.Once

// Register installs the json tag names and the struct level rules on gin's
// validator engine. Safe to call more than once.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}

	registerOnce.Do(func() {
		v.RegisterTagNameFunc(jsonName)
		v.RegisterStructValidation(scheduleRoomOrURL, services.ScheduleRequest{})
	})
	return nil
}

func jsonName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// scheduleRoomOrURL: a schedule happens in a room, at a url, or both
func scheduleRoomOrURL(sl validator.StructLevel) {
	s := sl.Current().Interface().(services.ScheduleRequest)

	hasRoom := s.RoomID != nil && *s.RoomID != uuid.Nil
	hasURL := s.URL != nil && strings.TrimSpace(*s.URL) != ""
	if !hasRoom && !hasURL {
		sl.ReportError(s.RoomID, "room_id", "RoomID", tagRoomOrURL, "")
	}
}

// FieldErrors converts a binding error into field -> message pairs. Keys use the
// json names, nested like "schedules[1].room_id".
func FieldErrors(err error) map[string]string {
	fields := make(map[string]string)

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			fields[fieldKey(fe)] = message(fe)
		}
	case errors.As(err, &typeErr):
		fields[typeErr.Field] = fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type)
	case errors.As(err, &syntaxErr):
		fields["body"] = "malformed JSON body"
	default:
		fields["body"] = err.Error()
	}

	return fields
}

// BindingError wraps a binding failure as a validation business error
func BindingError(err error) *common.BusinessError {
	return common.NewValidationError(FieldErrors(err))
}

// fieldKey drops the root struct name from the namespace
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if isCollection(fe.Kind()) {
			return fmt.Sprintf("%s must have at least %s items", field, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "email":
		return "email must have a valid format"
	case "url":
		return field + " must be a valid URL"
	case tagRoomOrURL:
		return "either room_id or url must be set"
	default:
		return field + " is invalid"
	}
}

func isCollection(k reflect.Kind) bool {
	return k == reflect.Slice || k == reflect.Array || k == reflect.Map
}

// ParseID valida que un parámetro de ruta sea un UUID válido
func ParseID(value, fieldName string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, common.NewValidationError(map[string]string{
			fieldName: fieldName + " must be a valid UUID",
		})
	}
	return id, nil
}
