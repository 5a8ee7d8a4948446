package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
}

// BindError is a malformed or incomplete request body.
type BindError struct {
	Message string
	Fields  map[string]string
}

func (e *BindError) Error() string {
	return e.Message
}

// DecodeJSON reads at most MaxRequestBody bytes into dst and runs its validate tags.
// message is the user-facing text returned when a tag fails.
func DecodeJSON(r *http.Request, dst any, message string) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, MaxRequestBody))
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &BindError{Message: message}
		}
		return &BindError{Message: MsgInvalidJSON}
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate request: %w", err)
		}
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = fe.Tag()
		}
		return &BindError{Message: message, Fields: fields}
	}
	return nil
}
