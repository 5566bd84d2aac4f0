package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message,omitempty"`
}

var jsonNamesOnce sync.Once

// useJSONNames makes validator report fields by their json tag, so clients
// see "applier.email" rather than "Applier.Email".
func useJSONNames() {
	jsonNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(sf reflect.StructField) string {
			name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return sf.Name
			}
			return name
		})
	})
}

// BindJSON decodes the body into out. An empty body leaves out at its zero
// value so presence checks report the missing fields. Failed presence checks
// answer 400 with missingCode, malformed JSON answers invalid_request.
func BindJSON(ctx *gin.Context, out any, missingCode string) bool {
	useJSONNames()

	err := ctx.ShouldBindJSON(out)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(out)
	}

	if err == nil {
		return true
	}

	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		RespondError(ctx, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body too large", nil)
		return false
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		RespondBadRequest(ctx, missingCode, "Missing required fields", gin.H{"fields": fieldErrors(validationErrors)})
		return false
	}

	RespondBadRequest(ctx, "invalid_request", "Invalid request body", decodeDetails(err))

	return false
}

func fieldErrors(errs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(errs))

	for _, fe := range errs {
		field := fe.Field()
		// the namespace starts with the Go type name of the root struct
		if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
			field = rest
		}

		msg := "failed " + fe.Tag() + " validation"
		if fe.Tag() == "required" {
			msg = "is required"
		}

		out = append(out, FieldError{Field: field, Rule: fe.Tag(), Message: msg})
	}

	return out
}

func decodeDetails(err error) gin.H {
	var syntaxError *json.SyntaxError
	if errors.As(err, &syntaxError) {
		return gin.H{"json": "invalid_json_syntax"}
	}

	var typeError *json.UnmarshalTypeError
	if errors.As(err, &typeError) {
		return gin.H{
			"json":  "invalid_json_type",
			"field": typeError.Field,
			"type":  typeError.Type.String(),
		}
	}

	return gin.H{"reason": err.Error()}
}
