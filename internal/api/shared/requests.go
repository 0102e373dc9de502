package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/hero-api/internal/domain"
)

// MsgBodyRequired is the message returned for an empty request body,
// regardless of the target shape.
const MsgBodyRequired = "Body of the request is required"

// validate is the shared validator instance. Field names in rendered
// messages come from json tags so clients see the wire names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeValidated decodes the JSON request body into dst and validates it
// against the constraints declared on dst's fields. dst must be a pointer
// to a struct whose fields carry json and validate tags.
//
// The pipeline rejects empty bodies, rejects keys not declared by the shape,
// projects declared keys into the typed value, and evaluates every field
// before deciding success. On failure it returns a *domain.ValidationError
// carrying the ordered list of all field messages; any other returned error
// means the pipeline itself could not run.
func DecodeValidated(r *http.Request, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return domain.NewValidationError(MsgBodyRequired)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.NewValidationError("Request body must be a JSON object")
	}
	if len(raw) == 0 {
		return domain.NewValidationError(MsgBodyRequired)
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("validation target must be a non-nil struct pointer, got %T", dst)
	}
	elem := v.Elem()

	fm := newFieldMessages()
	project(elem, raw, "", fm)

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("failed to validate request: %w", err)
		}
		for _, fe := range verrs {
			// Namespace is "<RootType>.<field>[.<child>...]" with json names.
			parts := strings.SplitN(fe.Namespace(), ".", 2)
			if len(parts) != 2 {
				continue
			}
			path := parts[1]
			if fm.failed[path] {
				// The decode phase already reported a type error here.
				continue
			}
			fm.byPath[path] = append(fm.byPath[path], constraintMessage(fe))
		}
	}

	msgs := render(elem.Type(), "", fm)
	if len(msgs) > 0 {
		return domain.NewValidationError(msgs...)
	}
	return nil
}

// fieldMessages accumulates messages keyed by the dotted json path of the
// originating field, plus whitelist violations keyed by the struct prefix
// they occurred under.
type fieldMessages struct {
	byPath    map[string][]string
	failed    map[string]bool
	unknownAt map[string][]string
}

func newFieldMessages() *fieldMessages {
	return &fieldMessages{
		byPath:    make(map[string][]string),
		failed:    make(map[string]bool),
		unknownAt: make(map[string][]string),
	}
}

// project copies declared keys from raw into the struct value, recording a
// type message for every value that fails coercion and a whitelist message
// for every undeclared key. Nested struct fields recurse with a dotted
// prefix.
func project(structVal reflect.Value, raw map[string]json.RawMessage, prefix string, fm *fieldMessages) {
	t := structVal.Type()
	declared := make(map[string]bool, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := jsonName(field)
		if name == "" {
			continue
		}
		declared[name] = true

		rv, present := raw[name]
		if !present {
			continue
		}

		path := prefix + name
		fv := structVal.Field(i)

		if isStructField(field.Type) {
			var childRaw map[string]json.RawMessage
			if err := json.Unmarshal(rv, &childRaw); err != nil {
				fm.byPath[path] = []string{typeMessage(name, reflect.Struct)}
				fm.failed[path] = true
				continue
			}
			child := fv
			if field.Type.Kind() == reflect.Pointer {
				if child.IsNil() {
					child.Set(reflect.New(field.Type.Elem()))
				}
				child = child.Elem()
			}
			project(child, childRaw, path+".", fm)
			continue
		}

		if err := json.Unmarshal(rv, fv.Addr().Interface()); err != nil {
			fm.byPath[path] = []string{typeMessage(name, fieldKind(field.Type))}
			fm.failed[path] = true
		}
	}

	var unknown []string
	for key := range raw {
		if !declared[key] {
			unknown = append(unknown, fmt.Sprintf("property %s should not exist", key))
		}
	}
	sort.Strings(unknown)
	fm.unknownAt[prefix] = unknown
}

// render walks the shape in declaration order and assembles the final
// ordered message list. Nested failures collapse into a single
// parent-prefixed, semicolon-joined string.
func render(t reflect.Type, prefix string, fm *fieldMessages) []string {
	var out []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := jsonName(field)
		if name == "" {
			continue
		}
		path := prefix + name

		if isStructField(field.Type) && !fm.failed[path] {
			out = append(out, fm.byPath[path]...)
			childType := field.Type
			if childType.Kind() == reflect.Pointer {
				childType = childType.Elem()
			}
			children := render(childType, path+".", fm)
			if len(children) > 0 {
				out = append(out, fmt.Sprintf("%s: %s", name, strings.Join(children, "; ")))
			}
			continue
		}

		out = append(out, fm.byPath[path]...)
	}
	out = append(out, fm.unknownAt[prefix]...)
	return out
}

func jsonName(field reflect.StructField) string {
	if !field.IsExported() {
		return ""
	}
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// isStructField reports whether the field holds a nested object shape.
// time.Time is treated as a scalar since it unmarshals from a JSON string.
func isStructField(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct && t != reflect.TypeOf(time.Time{})
}

func fieldKind(t reflect.Type) reflect.Kind {
	if t.Kind() == reflect.Pointer {
		return t.Elem().Kind()
	}
	return t.Kind()
}

func typeMessage(name string, kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return fmt.Sprintf("%s must be a string", name)
	case reflect.Bool:
		return fmt.Sprintf("%s must be a boolean value", name)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%s must be a number", name)
	case reflect.Struct, reflect.Map:
		return fmt.Sprintf("%s must be an object", name)
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("%s must be an array", name)
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}

// constraintMessage renders a single failed validation rule as a
// human-readable, field-scoped message.
func constraintMessage(fe validator.FieldError) string {
	name := fe.Field()
	kind := fe.Kind()
	if kind == reflect.Pointer {
		kind = fe.Type().Elem().Kind()
	}
	numeric := kind >= reflect.Int && kind <= reflect.Float64

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s should not be null or undefined", name)
	case "min":
		if numeric {
			return fmt.Sprintf("%s must not be less than %s", name, fe.Param())
		}
		return fmt.Sprintf("%s must be longer than or equal to %s characters", name, fe.Param())
	case "max":
		if numeric {
			return fmt.Sprintf("%s must not be greater than %s", name, fe.Param())
		}
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", name, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be an email", name)
	case "oneof":
		return fmt.Sprintf("%s must be one of the following values: %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
