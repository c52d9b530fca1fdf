// Package env fills configuration structs from environment variables.
//
// Fields opt in with an `env:"NAME"` tag and may carry a `default:"value"` tag
// that applies when NAME is unset. Nested structs are walked recursively.
package env

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"
)

// Validator is implemented by config sections that check themselves after loading.
type Validator interface {
	Validate() error
}

// ParseError reports a variable whose value does not fit its field.
type ParseError struct {
	Var   string
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("env %s=%q (field %s): %v", e.Var, e.Value, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TargetError is returned when Load is not given a pointer to a struct.
type TargetError struct {
	Type string
}

func (e *TargetError) Error() string {
	return "env: Load needs a pointer to a struct, got " + e.Type
}

// KindError is returned for a tagged field of a type Load cannot set.
type KindError struct {
	Kind string
}

func (e *KindError) Error() string {
	return "env: unsupported field kind " + e.Kind
}

var (
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
)

// Load populates v, then runs Validate on every nested section and finally on v itself.
//
// An empty value is kept for strings and is a ParseError for every other kind.
func Load(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return &TargetError{Type: fmt.Sprintf("%T", v)}
	}

	if err := loadStruct(rv.Elem()); err != nil {
		return err
	}
	return validate(rv)
}

func loadStruct(sv reflect.Value) error {
	st := sv.Type()

	for i := range sv.NumField() {
		fv, sf := sv.Field(i), st.Field(i)
		if !fv.CanSet() {
			continue
		}

		if fv.Kind() == reflect.Struct && fv.Type() != timeType {
			if err := loadStruct(fv); err != nil {
				return err
			}
			if err := validate(fv.Addr()); err != nil {
				return err
			}
			continue
		}

		raw, ok := lookup(sf)
		if !ok {
			continue
		}
		if err := assign(fv, raw); err != nil {
			return &ParseError{Var: sf.Tag.Get("env"), Field: sf.Name, Value: raw, Err: err}
		}
	}

	return nil
}

// lookup resolves the raw value of a tagged field: the environment first, then the default tag.
func lookup(sf reflect.StructField) (string, bool) {
	name := sf.Tag.Get("env")
	if name == "" {
		return "", false
	}
	if raw, set := os.LookupEnv(name); set {
		return raw, true
	}
	return sf.Tag.Lookup("default")
}

func validate(ptr reflect.Value) error {
	if v, ok := ptr.Interface().(Validator); ok {
		return v.Validate()
	}
	return nil
}

func assign(fv reflect.Value, raw string) error {
	switch {
	case fv.Type() == durationType:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		fv.SetInt(int64(d))

	case fv.Kind() == reflect.String:
		fv.SetString(raw)

	case fv.Kind() == reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		fv.SetBool(b)

	case fv.CanInt():
		n, err := strconv.ParseInt(raw, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(n)

	default:
		return &KindError{Kind: fv.Kind().String()}
	}
	return nil
}
