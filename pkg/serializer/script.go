package serializer

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/dop251/goja"
)

var scriptPattern = regexp.MustCompile(`^function\s*\(`)

// LooksLikeScript reports whether s is JavaScript function source.
func LooksLikeScript(s string) bool {
	return scriptPattern.MatchString(s)
}

// Script is a JavaScript function compiled into its own goja runtime.
// Calls are serialized, so a Script is safe for concurrent use.
type Script struct {
	src string

	mu sync.Mutex
	vm *goja.Runtime
	fn goja.Callable
}

// Compile evaluates src, which must be a function expression such as
// "function (a, b) { return a + b }".
func Compile(src string) (*Script, error) {
	vm := goja.New()
	val, err := vm.RunString("(" + src + ")")
	if err != nil {
		return nil, fmt.Errorf("compiling script: %w", err)
	}
	fn, ok := goja.AssertFunction(val)
	if !ok {
		return nil, fmt.Errorf("script is not a function")
	}
	return &Script{src: src, vm: vm, fn: fn}, nil
}

func (s *Script) Source() string {
	return s.src
}

// Call invokes the function with args and exports its return value. Integer
// results come back as int64, other numbers as float64.
func (s *Script) Call(args ...any) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vals := make([]goja.Value, len(args))
	for i, a := range args {
		vals[i] = s.vm.ToValue(a)
	}

	res, err := s.fn(goja.Undefined(), vals...)
	if err != nil {
		return nil, err
	}
	if res == nil || goja.IsUndefined(res) || goja.IsNull(res) {
		return nil, nil
	}
	return res.Export(), nil
}
