// Package formx holds the state of a single-entity edit form: its values,
// their validation and the save call that hands them to a gateway.
package formx

import (
	"context"
	"net/http"
	"sync"

	"github.com/Abraxas-365/hireboard/pkg/errx"
	"github.com/Abraxas-365/hireboard/pkg/logx"
)

var (
	ErrorRegistry = errx.NewRegistry("FORM")

	CodeInvalid = ErrorRegistry.Register("INVALID", errx.TypeValidation, http.StatusBadRequest, "Please fix the highlighted fields")
	CodeBusy    = ErrorRegistry.Register("BUSY", errx.TypeBusiness, http.StatusConflict, "A save is already in progress")
)

// SaveFunc sends the validated data to a gateway
type SaveFunc[D any] func(ctx context.Context, data D) error

// Option configures a Form
type Option[D any] func(*Form[D])

// WithRules adds cross-field rules checked after the struct tags
func WithRules[D any](rules ...Rule[D]) Option[D] {
	return func(f *Form[D]) {
		f.rules = append(f.rules, rules...)
	}
}

// WithFallback sets the message shown when a save fails without a server message
func WithFallback[D any](message string) Option[D] {
	return func(f *Form[D]) {
		f.fallback = message
	}
}

// OnSave registers fn to run after a successful save, typically a list refresh
func OnSave[D any](fn func(ctx context.Context, saved D)) Option[D] {
	return func(f *Form[D]) {
		f.onSave = append(f.onSave, fn)
	}
}

// Form holds editable data of type D
type Form[D any] struct {
	save     SaveFunc[D]
	rules    []Rule[D]
	fallback string
	onSave   []func(context.Context, D)

	mu      sync.Mutex
	data    D
	errors  []FieldError
	message string
	saving  bool
}

// New returns a form populated with initial
func New[D any](initial D, save SaveFunc[D], opts ...Option[D]) *Form[D] {
	f := &Form[D]{
		save:     save,
		fallback: "Something went wrong. Please try again.",
		data:     initial,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Data returns the current values
func (f *Form[D]) Data() D {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data
}

// Edit changes the current values in place
func (f *Form[D]) Edit(fn func(*D)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.data)
}

// Reset replaces the values and clears errors and message
func (f *Form[D]) Reset(data D) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = data
	f.errors = nil
	f.message = ""
}

// Validate checks the current values without saving
func (f *Form[D]) Validate() []FieldError {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = Validate(f.data, f.rules...)
	return f.errors
}

// Errors returns the field errors of the last Validate or Save
func (f *Form[D]) Errors() []FieldError {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors
}

// Message returns the user facing message of the last failed save
func (f *Form[D]) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Saving reports whether a save call is in flight
func (f *Form[D]) Saving() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saving
}

// Save validates the current values and, when they are valid, calls the save
// function. The values are kept whatever the outcome.
func (f *Form[D]) Save(ctx context.Context) error {
	f.mu.Lock()
	if f.saving {
		f.mu.Unlock()
		return ErrorRegistry.New(CodeBusy)
	}
	data := f.data
	f.errors = Validate(data, f.rules...)
	if len(f.errors) > 0 {
		fieldErrs := f.errors
		f.message = ""
		f.mu.Unlock()
		return ErrorRegistry.New(CodeInvalid).WithDetail("fields", fieldErrs)
	}
	f.saving = true
	f.message = ""
	f.mu.Unlock()

	err := f.save(ctx, data)

	f.mu.Lock()
	f.saving = false
	if err != nil {
		f.message = errx.UserMessage(err, f.fallback)
	}
	f.mu.Unlock()

	if err != nil {
		logx.Debugf("form save failed: %v", err)
		return err
	}
	for _, fn := range f.onSave {
		fn(ctx, data)
	}
	return nil
}

// Check validates d and returns a FORM_INVALID error listing the failing
// fields, or nil
func Check[D any](d D, rules ...Rule[D]) error {
	fieldErrs := Validate(d, rules...)
	if len(fieldErrs) == 0 {
		return nil
	}
	return ErrorRegistry.New(CodeInvalid).
		WithDetail("fields", fieldErrs).
		WithDetail("first", fieldErrs[0].Error())
}
