// Package errors provides standardized error messaging for the STM core.
package errors

import (
	"fmt"
	"runtime"
)

// ErrorCategory represents different categories of errors.
type ErrorCategory string

const (
	CategoryExhausted   ErrorCategory = "EXHAUSTED"   // raw allocator returned nil
	CategoryContingency ErrorCategory = "CONTINGENCY" // region or clock table full
	CategoryInvalidID   ErrorCategory = "INVALID_ID"   // bad region/clock id
	CategoryZombie      ErrorCategory = "ZOMBIE"       // stale buffer/region used
	CategorySaturation  ErrorCategory = "SATURATION"   // descriptor counter at INT_MAX
	CategoryInvariant   ErrorCategory = "INVARIANT"    // corrupted internal state
)

// StandardError provides a consistent error format.
type StandardError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Context  map[string]interface{}
	Caller   string
}

// Error implements the error interface.
func (e *StandardError) Error() string {
	return fmt.Sprintf("[%s:%s] %s (caller: %s)", e.Category, e.Code, e.Message, e.Caller)
}

// NewStandardError creates a new standardized error, capturing the caller
// one frame up from the constructor that invokes it.
func NewStandardError(category ErrorCategory, code, message string, context map[string]interface{}) *StandardError {
	pc, _, _, ok := runtime.Caller(2)
	caller := "unknown"

	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &StandardError{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  context,
		Caller:   caller,
	}
}

// Exhausted reports that the raw allocator backend refused a request.
func Exhausted(size uintptr) *StandardError {
	return NewStandardError(CategoryExhausted, "ALLOCATOR_EXHAUSTED",
		fmt.Sprintf("raw allocator failed to satisfy request of %d bytes", size),
		map[string]interface{}{"size": size})
}

// ContingencyExceeded reports that a bounded table (regions, clocks) is full.
func ContingencyExceeded(table string, limit int) *StandardError {
	return NewStandardError(CategoryContingency, "CONTINGENCY_EXCEEDED",
		fmt.Sprintf("%s table exhausted (limit %d)", table, limit),
		map[string]interface{}{"table": table, "limit": limit})
}

// InvalidID reports an out-of-range or otherwise unusable region/clock id.
func InvalidID(kind string, id int) *StandardError {
	return NewStandardError(CategoryInvalidID, "INVALID_ID",
		fmt.Sprintf("invalid %s id %d", kind, id),
		map[string]interface{}{"kind": kind, "id": id})
}

// Zombie reports use of a buffer or region whose age no longer matches the
// thread root's current_time.
func Zombie(kind string, id int) *StandardError {
	return NewStandardError(CategoryZombie, "ZOMBIE_USE",
		fmt.Sprintf("%s %d is a zombie (age mismatch)", kind, id),
		map[string]interface{}{"kind": kind, "id": id})
}

// Saturation reports a descriptor counter already at its maximum value.
func Saturation(ptr uintptr) *StandardError {
	return NewStandardError(CategorySaturation, "COUNTER_SATURATED",
		"descriptor counter saturated at INT_MAX",
		map[string]interface{}{"ptr": ptr})
}

// Invariant reports a fatal internal-consistency violation (impossible
// pointer, bad page-count bookkeeping). Callers in debug builds should panic
// with this error; release builds may log and attempt to continue.
func Invariant(details string) *StandardError {
	return NewStandardError(CategoryInvariant, "INVARIANT_VIOLATION", details, nil)
}
