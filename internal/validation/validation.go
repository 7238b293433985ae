// Package validation checks content records before they are written and turns
// validator failures into the per-field messages shown next to form inputs.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/example/portfolio-admin/internal/media"
)

// Summary is the message shown above a form that failed validation.
const Summary = "Please fill in all required fields correctly."

// ErrInvalid matches any *Errors with errors.Is.
var ErrInvalid = errors.New("validation failed")

// Errors maps JSON field names to a human readable message.
type Errors struct {
	Fields map[string]string
}

func (e *Errors) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Errors) Is(target error) bool { return target == ErrInvalid }

// Field returns a single-field error.
func Field(name, message string) *Errors {
	return &Errors{Fields: map[string]string{name: message}}
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("imgdata", func(fl validator.FieldLevel) bool {
			return media.DecodedSize(fl.Field().String()) >= 0
		})
		_ = v.RegisterValidation("imgsize", func(fl validator.FieldLevel) bool {
			return media.DecodedSize(fl.Field().String()) <= media.MaxImageBytes
		})
		validate = v
	})
	return validate
}

// Struct validates s using its `validate` tags. It returns nil, an *Errors
// describing every invalid field, or a non-validation error when s cannot be
// validated at all.
func Struct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating %T: %w", s, err)
	}

	labels := labelsOf(s)
	out := &Errors{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		name := stripIndex(fe.Field())
		if _, seen := out.Fields[name]; seen {
			continue
		}
		label, ok := labels[stripIndex(fe.StructField())]
		if !ok {
			label = name
		}
		out.Fields[name] = message(fe, label, fe.Field() != name)
	}
	return out
}

func stripIndex(field string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		return field[:i]
	}
	return field
}

var labelCache sync.Map // reflect.Type -> map[string]string

// labelsOf reads the `label` tag of every top-level field of s.
func labelsOf(s interface{}) map[string]string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := labelCache.Load(t); ok {
		return cached.(map[string]string)
	}
	labels := map[string]string{}
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if l := f.Tag.Get("label"); l != "" {
				labels[f.Name] = l
			}
		}
	}
	labelCache.Store(t, labels)
	return labels
}

func message(fe validator.FieldError, label string, element bool) string {
	lower := strings.ToLower(label)
	switch fe.Tag() {
	case "required", "notblank":
		if element {
			return "Every " + lower + " must have a value"
		}
		return label + " is required"
	case "url", "http_url":
		if element {
			return "One or more " + lower + " URLs are invalid"
		}
		return "Invalid " + lower + " URL"
	case "email":
		return "Invalid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		if fe.Kind() == reflect.Slice {
			return "At least one " + lower + " is required"
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "imgdata":
		if element {
			return "One or more " + lower + "s could not be decoded"
		}
		return label + " could not be decoded"
	case "imgsize":
		if element {
			return "One or more " + lower + "s exceed the 5 MB limit"
		}
		return label + " exceeds the 5 MB limit"
	}
	return label + " is invalid"
}

// Clamp limits n to [lo, hi].
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
