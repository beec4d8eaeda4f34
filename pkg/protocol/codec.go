package protocol

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"
)

// TypeKey is the discriminant key of every message on the wire.
const TypeKey = "type"

// EncodeTagged marshals v, which must encode as a JSON object, and puts the
// tagKey:tag pair in front of its fields. Variants call it from MarshalJSON
// with a method-less copy of themselves.
func EncodeTagged(tagKey, tag string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		var ee *EncodeError
		if errors.As(err, &ee) {
			return nil, ee
		}
		return nil, &EncodeError{Type: tag, Err: err}
	}
	if len(body) < 2 || body[0] != '{' {
		return nil, &EncodeError{Type: tag, Err: fmt.Errorf("variant encoded as %s, want object", body)}
	}

	key, _ := json.Marshal(tagKey)
	val, _ := json.Marshal(tag)

	out := make([]byte, 0, len(body)+len(key)+len(val)+2)
	out = append(out, '{')
	out = append(out, key...)
	out = append(out, ':')
	out = append(out, val...)
	if len(body) > 2 {
		out = append(out, ',')
		out = append(out, body[1:]...)
	} else {
		out = append(out, '}')
	}
	return out, nil
}

// PeekTag validates that data is a JSON object and returns the string stored
// under tagKey without decoding anything else.
func PeekTag(data []byte, tagKey string) (string, error) {
	obj, err := parseObject(data)
	if err != nil {
		return "", err
	}
	tag := obj.Get(tagKey)
	if !tag.Exists() || tag.Type != gjson.String {
		return "", &DecodeError{Kind: ErrMissingType, Field: tagKey}
	}
	return tag.String(), nil
}

func parseObject(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, &DecodeError{Kind: ErrMalformedJSON}
	}
	obj := gjson.ParseBytes(data)
	if !obj.IsObject() {
		return gjson.Result{}, &DecodeError{Kind: ErrNotObject}
	}
	// gjson reads the first of two equal keys and encoding/json the last, so
	// an object with repeated keys is refused outright.
	var dup string
	seen := make(map[string]struct{})
	obj.ForEach(func(key, _ gjson.Result) bool {
		k := key.String()
		if _, ok := seen[k]; ok {
			dup = k
			return false
		}
		seen[k] = struct{}{}
		return true
	})
	if dup != "" {
		return gjson.Result{}, &DecodeError{Kind: ErrInvalidField, Field: dup, Err: errDuplicateKey}
	}
	return obj, nil
}

// DecodeObject unmarshals a JSON object into the struct pointed to by v and
// then enforces presence of required fields. A field is optional when it is a
// pointer, carries omitempty, or is tagged protocol:"optional". A required
// field may only be null when it is a list or map.
//
// Unknown keys are ignored.
func DecodeObject(data []byte, v any) error {
	obj, err := parseObject(data)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return translate(err)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return nil
	}
	return checkFields(rv.Elem().Type(), obj, "")
}

func translate(err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return de
	}
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return &DecodeError{Kind: ErrMalformedJSON, Err: err}
	}
	var typ *json.UnmarshalTypeError
	if errors.As(err, &typ) {
		return &DecodeError{Kind: ErrInvalidField, Field: typ.Field, Err: err}
	}
	return &DecodeError{Kind: ErrInvalidField, Err: err}
}

var (
	jsonUnmarshaler = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	textUnmarshaler = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// selfDecoding types validate their own content.
func selfDecoding(t reflect.Type) bool {
	pt := reflect.PointerTo(t)
	return pt.Implements(jsonUnmarshaler) || pt.Implements(textUnmarshaler)
}

func checkFields(t reflect.Type, obj gjson.Result, prefix string) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, omitEmpty := jsonName(f)
		if name == "-" {
			continue
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		optional := omitEmpty || f.Type.Kind() == reflect.Pointer || f.Tag.Get("protocol") == "optional"
		val := obj.Get(gjsonKey(name))
		switch {
		case !val.Exists():
			if !optional {
				return &DecodeError{Kind: ErrMissingField, Field: path}
			}
		case val.Type == gjson.Null:
			if !optional && !nullable(f.Type) {
				return &DecodeError{Kind: ErrMissingField, Field: path, Err: errors.New("null")}
			}
		default:
			if err := checkValue(f.Type, val, path); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkValue(t reflect.Type, val gjson.Result, path string) error {
	if selfDecoding(t) {
		return nil
	}
	switch t.Kind() {
	case reflect.Pointer:
		return checkValue(t.Elem(), val, path)
	case reflect.Struct:
		if val.IsObject() {
			return checkFields(t, val, path)
		}
	case reflect.Slice, reflect.Array:
		if !val.IsArray() {
			return nil
		}
		for i, el := range val.Array() {
			if err := checkValue(t.Elem(), el, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func nullable(t reflect.Type) bool {
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Map
}

func jsonName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	omit := false
	for _, o := range strings.Split(opts, ",") {
		if o == "omitempty" || o == "omitzero" {
			omit = true
		}
	}
	return name, omit
}

// gjsonKey escapes the path metacharacters gjson would otherwise interpret.
func gjsonKey(name string) string {
	if !strings.ContainsAny(name, ".*?|#@\\") {
		return name
	}
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(".*?|#@\\", r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isNull reports a literal JSON null. Custom decoders treat it as a no-op and
// leave the required-field check to report it.
func isNull(data []byte) bool {
	return string(bytes.TrimSpace(data)) == "null"
}
