package errx

import (
	"fmt"
	"sync"
)

// Code is a registered, prefixed error code such as "JOB_NOT_FOUND"
type Code string

type definition struct {
	typ        Type
	httpStatus int
	message    string
}

// Registry holds the error codes of one bounded context
type Registry struct {
	prefix string

	mu   sync.RWMutex
	defs map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register declares a code. It panics on duplicates since registries are
// populated from package level vars.
func (r *Registry) Register(code string, typ Type, httpStatus int, message string) Code {
	full := Code(r.prefix + "_" + code)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[full]; exists {
		panic(fmt.Sprintf("errx: duplicate code %s", full))
	}
	r.defs[full] = definition{typ: typ, httpStatus: httpStatus, message: message}
	return full
}

// New creates an error for a registered code
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	def, ok := r.defs[code]
	r.mu.RUnlock()
	if !ok {
		return New(string(code), TypeInternal, StatusForType(TypeInternal), "unregistered error code")
	}
	return New(string(code), def.typ, def.httpStatus, def.message)
}

// NewWithMessage creates an error for a registered code with a custom message
func (r *Registry) NewWithMessage(code Code, message string) *Error {
	e := r.New(code)
	e.Message = message
	return e
}

// Has reports whether code was registered here
func (r *Registry) Has(code Code) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.defs[code]
	return ok
}
