package serializer

import (
	"encoding/json"
	"fmt"
	"reflect"
)

const workKey = "$work"

// Bag is an open set of properties, as stored for a job definition.
type Bag map[string]any

// Ref names a registered function. It is written as {"$work": name} and
// stays a Ref after parsing when the registry does not know the name.
type Ref struct {
	Name string
}

// Serializer turns bags and argument lists into JSON text and back.
//
// Functions known to Registry are written by name; unknown functions are
// dropped. Scripts are written as their source only when PersistScripts is
// set, and strings that look like function source are only compiled back
// under the same flag.
type Serializer struct {
	Registry       *Registry
	PersistScripts bool
}

func (s *Serializer) Stringify(bag Bag) (string, error) {
	v, _ := s.encode(map[string]any(bag))
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("stringify: %w", err)
	}
	return string(data), nil
}

func (s *Serializer) Parse(text string) (Bag, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	bag := make(Bag, len(raw))
	for k, v := range raw {
		bag[k] = s.decode(v)
	}
	return bag, nil
}

func (s *Serializer) StringifyArgs(args []any) (string, error) {
	if args == nil {
		args = []any{}
	}
	v, _ := s.encode(args)
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("stringify args: %w", err)
	}
	return string(data), nil
}

func (s *Serializer) ParseArgs(text string) ([]any, error) {
	var raw []any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}
	args := make([]any, len(raw))
	for i, v := range raw {
		args[i] = s.decode(v)
	}
	return args, nil
}

// encode replaces callables by their durable form. ok is false when the
// value has none and must be dropped.
func (s *Serializer) encode(v any) (out any, ok bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case Ref:
		return map[string]any{workKey: t.Name}, true
	case *Script:
		if !s.PersistScripts || t == nil {
			return nil, false
		}
		return t.Source(), true
	case Bag:
		return s.encodeMap(t), true
	case map[string]any:
		return s.encodeMap(t), true
	case []any:
		list := make([]any, len(t))
		for i, e := range t {
			list[i], _ = s.encode(e)
		}
		return list, true
	}

	if reflect.TypeOf(v).Kind() == reflect.Func {
		name, found := s.Registry.NameOf(v)
		if !found {
			return nil, false
		}
		return map[string]any{workKey: name}, true
	}
	return v, true
}

func (s *Serializer) encodeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, e := range m {
		if enc, ok := s.encode(e); ok {
			out[k] = enc
		}
	}
	return out
}

func (s *Serializer) decode(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if name, ok := t[workKey].(string); ok && len(t) == 1 {
			if fn, found := s.Registry.Lookup(name); found {
				return fn
			}
			return Ref{Name: name}
		}
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = s.decode(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = s.decode(e)
		}
		return t
	case string:
		if s.PersistScripts && LooksLikeScript(t) {
			if script, err := Compile(t); err == nil {
				return script
			}
		}
		return t
	}
	return v
}
