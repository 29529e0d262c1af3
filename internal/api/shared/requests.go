package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes caps the size of a JSON request body.
const MaxBodyBytes = 1 << 20

// linkPattern accepts http(s) URLs with an optional www. prefix and at least
// one dot in the host.
var linkPattern = regexp.MustCompile(`^https?://(www\.)?[a-zA-Z0-9-]+\.[\w\-.~:?#\[\]@!$&'()*+,;=]{2,}#?`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the custom "link" and
// "maxbytes" tags registered and JSON names used for fields.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		// Registration only fails for empty tags or nil functions.
		_ = v.RegisterValidation("link", validateLink)
		_ = v.RegisterValidation("maxbytes", validateMaxBytes)
		validate = v
	})
	return validate
}

// IsLink reports whether s matches the link pattern.
func IsLink(s string) bool {
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}
	return linkPattern.MatchString(s)
}

func validateLink(fl validator.FieldLevel) bool {
	return IsLink(fl.Field().String())
}

func validateMaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// ErrInvalidBody is returned by DecodeJSON for unparseable bodies.
var ErrInvalidBody = errors.New("invalid request body")

// DecodeJSON decodes the request body into v. Unknown fields, trailing data
// and bodies over MaxBodyBytes are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidBody)
	}
	return nil
}

// FieldError describes one failed rule on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects field-level failures.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Checker is implemented by request bodies with rules spanning fields.
type Checker interface {
	Check() []FieldError
}

// ValidateRequest validates v with the shared validator and, if v is a
// Checker, its cross-field rules. It returns *ValidationError or nil.
func ValidateRequest(v any) error {
	var fields []FieldError
	if err := Validator().Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Message: TagMessage(fe.Tag(), fe.Param())})
		}
	}
	if c, ok := v.(Checker); ok {
		fields = append(fields, c.Check()...)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateVar validates a single value, reporting failures against name.
func ValidateVar(name, value, tag string) *FieldError {
	err := Validator().Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &FieldError{Field: name, Message: TagMessage(verrs[0].Tag(), verrs[0].Param())}
	}
	return &FieldError{Field: name, Message: "is invalid"}
}

// TagMessage maps validation tags to user-friendly error messages
func TagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "link", "url":
		return "must be a valid URL"
	case "min":
		return "must be at least " + param + " characters"
	case "max":
		return "must be at most " + param + " characters"
	case "maxbytes":
		return "must be at most " + param + " bytes"
	case "len":
		return "must be exactly " + param + " characters"
	case "hexadecimal":
		return "must be hexadecimal"
	default:
		return "is invalid"
	}
}
