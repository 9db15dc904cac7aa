package tomldoc

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"
)

// Unmarshal parses TOML data and stores its values in the value pointed
// to by v. See Document.Decode for the conversion rules.
func Unmarshal(data []byte, v any, opts ...Option) error {
	doc, err := Parse(data, opts...)
	if err != nil {
		return err
	}
	return doc.Decode(v)
}

// Decode stores the data of the document in the value pointed to by v.
//
// Tables decode into structs or maps with string keys. Struct fields are
// matched by their `toml` tag, then by field name, then case
// insensitively; a tag of "-" skips the field. Arrays and arrays of
// tables decode into slices or arrays of the same length. Datetimes
// decode into time.Time, Datetime or a string holding their TOML text.
// Types implementing encoding.TextUnmarshaler receive string values.
func (d *Document) Decode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("tomldoc: Decode(non-pointer %T or nil)", v)
	}
	m, err := d.Map()
	if err != nil {
		return err
	}
	ds := &decodeState{depth: defaultMaxDepth}
	return ds.mapValue(m, rv.Elem())
}

// UnmarshalerError wraps an error returned by a custom unmarshaler.
type UnmarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *UnmarshalerError) Error() string {
	return fmt.Sprintf("tomldoc: error calling UnmarshalText for type %s: %v", e.Type, e.Err)
}

func (e *UnmarshalerError) Unwrap() error { return e.Err }

var (
	timeType     = reflect.TypeFor[time.Time]()
	datetimeType = reflect.TypeFor[Datetime]()
)

type decodeState struct {
	depth int
	path  []string
}

// errorf adds the key path being decoded to an error message.
func (ds *decodeState) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if len(ds.path) > 0 {
		msg += " at key " + displayPath(ds.path)
	}
	return fmt.Errorf("tomldoc: %s", msg)
}

func (ds *decodeState) mapValue(v any, rv reflect.Value) error { //nolint:gocyclo
	ds.depth--
	if ds.depth <= 0 {
		return ds.errorf("reached max recursion depth")
	}
	defer func() { ds.depth++ }()

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	handled, err := ds.tryCustomUnmarshal(v, rv)
	if err != nil || handled {
		return err
	}

	if rv.Kind() == reflect.Interface {
		if rv.NumMethod() != 0 {
			return ds.errorf("cannot decode into non-empty interface %s", rv.Type())
		}
		rv.Set(reflect.ValueOf(v))
		return nil
	}
	if !rv.CanSet() {
		return ds.errorf("cannot set value of type %s", rv.Type())
	}

	switch v := v.(type) {
	case string:
		return ds.mapString(v, rv)
	case int64:
		return ds.mapInt(v, rv)
	case float64:
		return ds.mapFloat(v, rv)
	case bool:
		if rv.Kind() != reflect.Bool {
			return ds.mismatch("boolean", rv)
		}
		rv.SetBool(v)
		return nil
	case Datetime:
		return ds.mapDatetime(v, rv)
	case []any:
		return ds.mapList(len(v), func(i int, ev reflect.Value) error { return ds.mapValue(v[i], ev) }, rv)
	case []map[string]any:
		return ds.mapList(len(v), func(i int, ev reflect.Value) error { return ds.mapValue(v[i], ev) }, rv)
	case map[string]any:
		switch rv.Kind() {
		case reflect.Struct:
			return ds.mapStruct(v, rv)
		case reflect.Map:
			return ds.mapMap(v, rv)
		default:
			return ds.mismatch("table", rv)
		}
	default:
		return ds.errorf("cannot decode value of type %T", v)
	}
}

func (ds *decodeState) mismatch(what string, rv reflect.Value) error {
	return ds.errorf("cannot decode %s into Go value of type %s", what, rv.Type())
}

// tryCustomUnmarshal passes string values to types implementing
// encoding.TextUnmarshaler. It reports whether v was consumed.
func (ds *decodeState) tryCustomUnmarshal(v any, rv reflect.Value) (bool, error) {
	s, ok := v.(string)
	if !ok || !rv.CanAddr() {
		return false, nil
	}
	pv := rv.Addr()
	if !pv.CanInterface() {
		return false, nil
	}
	u, ok := pv.Interface().(encoding.TextUnmarshaler)
	if !ok {
		return false, nil
	}
	if err := u.UnmarshalText([]byte(s)); err != nil {
		return true, &UnmarshalerError{Type: pv.Type(), Err: err}
	}
	return true, nil
}

func (ds *decodeState) mapString(s string, rv reflect.Value) error {
	if rv.Kind() != reflect.String {
		return ds.mismatch("string", rv)
	}
	rv.SetString(s)
	return nil
}

func (ds *decodeState) mapInt(n int64, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.OverflowInt(n) {
			return ds.errorf("integer %d overflows Go value of type %s", n, rv.Type())
		}
		rv.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n < 0 || rv.OverflowUint(uint64(n)) {
			return ds.errorf("integer %d overflows Go value of type %s", n, rv.Type())
		}
		rv.SetUint(uint64(n))
		return nil
	default:
		return ds.mismatch("integer", rv)
	}
}

func (ds *decodeState) mapFloat(f float64, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		if rv.OverflowFloat(f) {
			return ds.errorf("float %g overflows Go value of type %s", f, rv.Type())
		}
		rv.SetFloat(f)
		return nil
	default:
		return ds.mismatch("float", rv)
	}
}

func (ds *decodeState) mapDatetime(dt Datetime, rv reflect.Value) error {
	switch {
	case rv.Type() == timeType:
		rv.Set(reflect.ValueOf(dt.Time))
	case rv.Type() == datetimeType:
		rv.Set(reflect.ValueOf(dt))
	case rv.Kind() == reflect.String:
		rv.SetString(dt.String())
	default:
		return ds.mismatch("datetime", rv)
	}
	return nil
}

// mapList decodes n elements into a slice or an array of length n.
func (ds *decodeState) mapList(n int, elem func(int, reflect.Value) error, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Slice:
		s := reflect.MakeSlice(rv.Type(), n, n)
		for i := range n {
			if err := elem(i, s.Index(i)); err != nil {
				return err
			}
		}
		rv.Set(s)
		return nil
	case reflect.Array:
		if rv.Len() != n {
			return ds.errorf("cannot decode array of length %d into Go array of length %d", n, rv.Len())
		}
		for i := range n {
			if err := elem(i, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return ds.mismatch("array", rv)
	}
}

func (ds *decodeState) mapMap(m map[string]any, rv reflect.Value) error {
	mapType := rv.Type()
	if mapType.Key().Kind() != reflect.String {
		return ds.errorf("cannot decode table into map with non-string key type %s", mapType.Key())
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(mapType))
	}
	for k, v := range m {
		ev := reflect.New(mapType.Elem()).Elem()
		ds.path = append(ds.path, k)
		err := ds.mapValue(v, ev)
		ds.path = ds.path[:len(ds.path)-1]
		if err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(k).Convert(mapType.Key()), ev)
	}
	return nil
}

func (ds *decodeState) mapStruct(m map[string]any, rv reflect.Value) error {
	fields := cachedFields(rv.Type())
	for k, v := range m {
		f := findField(fields, k)
		if f == nil {
			continue
		}
		fv, ok := fieldByIndex(rv, f.idx)
		if !ok || !fv.CanSet() {
			continue
		}
		ds.path = append(ds.path, k)
		err := ds.mapValue(v, fv)
		ds.path = ds.path[:len(ds.path)-1]
		if err != nil {
			return err
		}
	}
	return nil
}

// fieldByIndex is like reflect.Value.FieldByIndex but allocates nil
// embedded pointers on the way.
func fieldByIndex(v reflect.Value, idx []int) (reflect.Value, bool) {
	for i, x := range idx {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

// findField finds the target field in a struct's cached fields.
// It first attempts a case-sensitive match, then falls back to a
// case-insensitive match.
func findField(fields map[string]field, key string) *field {
	if f, ok := fields[key]; ok {
		return &f
	}
	if f, ok := fields[strings.ToLower(key)]; ok {
		return &f
	}
	return nil
}

// A field represents a single field in a struct.
type field struct {
	idx []int
}

// fieldCache caches a map of struct field names to their properties.
var fieldCache sync.Map // map[reflect.Type]map[string]field

// cachedFields returns a map of field names to field properties for the given type.
// The result is cached to avoid repeated reflection work.
func cachedFields(t reflect.Type) map[string]field { //nolint:gocognit
	if f, ok := fieldCache.Load(t); ok {
		if fields, ok := f.(map[string]field); ok {
			return fields
		}
	}

	fields := make(map[string]field)
	add := func(name string, f field) {
		if _, ok := fields[name]; !ok {
			fields[name] = f
		}
	}
	// Fields of the outer struct are added before promoted ones so that
	// they win on a name clash.
	var walk func(t reflect.Type, idx []int)
	walk = func(t reflect.Type, idx []int) {
		var embedded []int
		for i := range t.NumField() {
			sf := t.Field(i)
			if sf.Anonymous && indirect(sf.Type).Kind() == reflect.Struct {
				embedded = append(embedded, i)
				continue
			}
			if !sf.IsExported() {
				continue
			}

			tag := sf.Tag.Get("toml")
			if tag == "-" {
				continue
			}

			f := field{idx: append(slices.Clone(idx), i)}
			name, _, _ := strings.Cut(tag, ",")
			if name == "" {
				name = sf.Name
			}
			add(name, f)
			add(strings.ToLower(name), f)
		}
		for _, i := range embedded {
			walk(indirect(t.Field(i).Type), append(slices.Clone(idx), i))
		}
	}
	walk(t, nil)

	fieldCache.Store(t, fields)
	return fields
}

func indirect(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}
