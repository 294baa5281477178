package actions

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

const (
	classSuffix = ".class"
	arraySuffix = "[]"
)

// Char is the Go type behind the "char" type name.
type Char rune

// TypeRegistry resolves the type names found in action descriptors to Go types.
//
// Primitive names are accepted bare ("int") or qualified ("int.class").
// A trailing "[]" resolves to a slice of the element type.
type TypeRegistry struct {
	mu        sync.RWMutex
	types     map[string]reflect.Type
	canonical map[string]string
}

func NewTypeRegistry() *TypeRegistry {
	t := &TypeRegistry{
		types:     make(map[string]reflect.Type),
		canonical: make(map[string]string),
	}

	t.Register("byte", reflect.TypeFor[int8](), "java.lang.Byte", "Byte")
	t.Register("short", reflect.TypeFor[int16](), "java.lang.Short", "Short")
	t.Register("int", reflect.TypeFor[int32](), "java.lang.Integer", "Integer")
	t.Register("long", reflect.TypeFor[int64](), "java.lang.Long", "Long")
	t.Register("float", reflect.TypeFor[float32](), "java.lang.Float", "Float")
	t.Register("double", reflect.TypeFor[float64](), "java.lang.Double", "Double")
	t.Register("boolean", reflect.TypeFor[bool](), "java.lang.Boolean", "Boolean")
	t.Register("char", reflect.TypeFor[Char](), "java.lang.Character", "Character")
	t.Register("string", reflect.TypeFor[string](), "java.lang.String", "String")

	return t
}

// Register adds a named type and its aliases. Re-registering a name replaces it.
func (t *TypeRegistry) Register(name string, typ reflect.Type, aliases ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.types[name] = typ
	t.canonical[name] = name
	for _, a := range aliases {
		t.canonical[a] = name
	}
}

// Canonical returns the canonical name and Go type of a type name.
func (t *TypeRegistry) Canonical(name string) (string, reflect.Type, error) {
	trimmed := strings.TrimSpace(name)
	if strings.HasSuffix(trimmed, arraySuffix) {
		elem, typ, err := t.Canonical(strings.TrimSuffix(trimmed, arraySuffix))
		if err != nil {
			return "", nil, srvErrors.NewNoSuchTypeError(name)
		}
		return elem + arraySuffix, reflect.SliceOf(typ), nil
	}
	trimmed = strings.TrimSuffix(trimmed, classSuffix)

	t.mu.RLock()
	defer t.mu.RUnlock()

	c, ok := t.canonical[trimmed]
	if !ok {
		return "", nil, srvErrors.NewNoSuchTypeError(name)
	}
	return c, t.types[c], nil
}

// Signature canonicalizes a list of type names.
func (t *TypeRegistry) Signature(names []string) ([]string, error) {
	sig := make([]string, 0, len(names))
	for _, n := range names {
		c, _, err := t.Canonical(n)
		if err != nil {
			return nil, err
		}
		sig = append(sig, c)
	}
	return sig, nil
}

// Decode deserializes one JSON argument value into the declared type.
func (t *TypeRegistry) Decode(typeName, raw string) (any, error) {
	_, typ, err := t.Canonical(typeName)
	if err != nil {
		return nil, err
	}
	return decodeValue(typeName, typ, raw)
}

// DecodeAll decodes values against types, position by position.
// Count mismatches are rejected before anything is decoded.
func (t *TypeRegistry) DecodeAll(types, values []string) ([]any, error) {
	if len(types) != len(values) {
		return nil, srvErrors.NewArgumentCountMismatchError(len(types), len(values))
	}

	args := make([]any, 0, len(values))
	for i := range values {
		v, err := t.Decode(types[i], values[i])
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

func decodeValue(typeName string, typ reflect.Type, raw string) (any, error) {
	if !gjson.Valid(raw) {
		return nil, srvErrors.NewArgumentDeserializationError("value %q of type '%s' is not valid JSON", raw, typeName)
	}
	res := gjson.Parse(raw)
	mismatch := func() error {
		return srvErrors.NewArgumentDeserializationError("cannot convert %s to '%s'", res.Raw, typeName)
	}

	v := reflect.New(typ).Elem()
	switch {
	case typ == reflect.TypeFor[Char]():
		if res.Type != gjson.String || utf8.RuneCountInString(res.Str) != 1 {
			return nil, mismatch()
		}
		r, _ := utf8.DecodeRuneInString(res.Str)
		v.SetInt(int64(r))
	case typ.Kind() >= reflect.Int && typ.Kind() <= reflect.Int64:
		n, err := strconv.ParseInt(numberLiteral(res), 10, 64)
		if err != nil || v.OverflowInt(n) {
			return nil, mismatch()
		}
		v.SetInt(n)
	case typ.Kind() == reflect.Float32 || typ.Kind() == reflect.Float64:
		f, err := strconv.ParseFloat(numberLiteral(res), typ.Bits())
		if err != nil {
			return nil, mismatch()
		}
		v.SetFloat(f)
	case typ.Kind() == reflect.Bool:
		if !res.IsBool() {
			return nil, mismatch()
		}
		v.SetBool(res.Bool())
	case typ.Kind() == reflect.String:
		switch res.Type {
		case gjson.String:
			v.SetString(res.Str)
		case gjson.Null:
		default:
			return nil, mismatch()
		}
	case typ.Kind() == reflect.Slice:
		if res.Type == gjson.Null {
			break
		}
		if !res.IsArray() {
			return nil, mismatch()
		}
		elemName := strings.TrimSuffix(strings.TrimSpace(typeName), arraySuffix)
		elems := res.Array()
		v = reflect.MakeSlice(typ, 0, len(elems))
		for _, e := range elems {
			ev, err := decodeValue(elemName, typ.Elem(), e.Raw)
			if err != nil {
				return nil, mismatch()
			}
			v = reflect.Append(v, reflect.ValueOf(ev))
		}
	default:
		ptr := reflect.New(typ)
		if err := json.Unmarshal([]byte(raw), ptr.Interface()); err != nil {
			return nil, srvErrors.NewArgumentDeserializationError("cannot convert %s to '%s': %v", res.Raw, typeName, err)
		}
		v = ptr.Elem()
	}
	return v.Interface(), nil
}

// numberLiteral accepts JSON numbers and numeric strings.
func numberLiteral(res gjson.Result) string {
	switch res.Type {
	case gjson.Number:
		return res.Raw
	case gjson.String:
		return strings.TrimSpace(res.Str)
	default:
		return ""
	}
}

// TypeName returns the canonical name the registry would use for a Go type.
func (t *TypeRegistry) TypeName(typ reflect.Type) (string, error) {
	if typ.Kind() == reflect.Slice {
		elem, err := t.TypeName(typ.Elem())
		if err != nil {
			return "", err
		}
		return elem + arraySuffix, nil
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	for name, candidate := range t.types {
		if candidate == typ {
			return name, nil
		}
	}
	return "", fmt.Errorf("type %s is not registered", typ)
}
