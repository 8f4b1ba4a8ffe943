package model

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
)

// ValidationError reports malformed input.  Fields maps the camelCase JSON
// field name to a human readable message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type validator struct {
	fields map[string]string
}

func newValidator() *validator { return &validator{fields: map[string]string{}} }

func (v *validator) check(ok bool, field, msg string) {
	if !ok {
		if _, exists := v.fields[field]; !exists {
			v.fields[field] = msg
		}
	}
}

func (v *validator) required(field, val string) {
	v.check(strings.TrimSpace(val) != "", field, "is required")
}

func (v *validator) slug(field, val string) {
	v.check(slugPattern.MatchString(val), field, "must be lowercase words separated by dashes")
}

func (v *validator) oneOf(field, val string, allowed ...string) {
	for _, a := range allowed {
		if val == a {
			return
		}
	}
	v.check(false, field, "must be one of "+strings.Join(allowed, ", "))
}

// Set-field variants used by patches: they only check when the key was sent.

func (v *validator) requiredIfSet(field string, o Optional[string]) {
	if s, ok := o.Get(); ok {
		v.required(field, s)
	}
}

func (v *validator) slugIfSet(field string, o Optional[string]) {
	if s, ok := o.Get(); ok {
		v.slug(field, s)
	}
}

func (v *validator) oneOfIfSet(field string, o Optional[string], allowed ...string) {
	if s, ok := o.Get(); ok {
		v.oneOf(field, s, allowed...)
	}
}

type nullSender interface{ sentNull() bool }

// noNulls flags every Optional field of patch that received a null it cannot
// store.  patch must be a struct value.
func (v *validator) noNulls(patch any) {
	rv := reflect.ValueOf(patch)
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f, ok := rv.Field(i).Interface().(nullSender)
		if !ok || !f.sentNull() {
			continue
		}
		name, _, _ := strings.Cut(rt.Field(i).Tag.Get("json"), ",")
		if name == "" {
			name = rt.Field(i).Name
		}
		v.check(false, name, "must not be null")
	}
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

func validEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t\n")
}
