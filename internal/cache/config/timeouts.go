package config

import (
	"fmt"
	"time"
)

// DefaultOperationTimeout is applied to every operation category unless
// overridden through the Builder.
const DefaultOperationTimeout = 5 * time.Second

// Timeouts bounds the three categories of remote operations issued against
// the clustered store: read-only calls, mutative calls (put/remove style)
// and store lifecycle calls (create/validate/destroy). Use NewBuilder to
// construct one.
//
// A Timeouts value is immutable and comparable: two values built from equal
// durations compare equal with == and behave identically as map keys.
type Timeouts struct {
	readOperationTimeout      time.Duration
	mutativeOperationTimeout  time.Duration
	lifecycleOperationTimeout time.Duration
}

// ReadOperationTimeout bounds read-only operations like entry lookups.
func (t Timeouts) ReadOperationTimeout() time.Duration {
	return t.readOperationTimeout
}

// MutativeOperationTimeout bounds state-changing operations like put and
// remove.
func (t Timeouts) MutativeOperationTimeout() time.Duration {
	return t.mutativeOperationTimeout
}

// LifecycleOperationTimeout bounds store management operations like
// validate and destroy.
func (t Timeouts) LifecycleOperationTimeout() time.Duration {
	return t.lifecycleOperationTimeout
}

// Equal reports structural equality over the three durations.
func (t Timeouts) Equal(o Timeouts) bool {
	return t == o
}

func (t Timeouts) String() string {
	return fmt.Sprintf("Timeouts{readOperationTimeout=%s, mutativeOperationTimeout=%s, lifecycleOperationTimeout=%s}",
		t.readOperationTimeout, t.mutativeOperationTimeout, t.lifecycleOperationTimeout)
}

// Builder accumulates timeout settings and snapshots them into Timeouts
// values. A fresh Builder starts with DefaultOperationTimeout for every
// category. It may be reused after Build to produce further independent
// values; it is not safe for concurrent use.
type Builder struct {
	read      time.Duration
	mutative  time.Duration
	lifecycle time.Duration
}

// NewBuilder returns a Builder with all three timeouts preset to
// DefaultOperationTimeout.
func NewBuilder() *Builder {
	return &Builder{
		read:      DefaultOperationTimeout,
		mutative:  DefaultOperationTimeout,
		lifecycle: DefaultOperationTimeout,
	}
}

// SetReadOperationTimeout records the timeout for read operations and
// returns the builder for chaining. Panics if d is negative; a zero
// timeout is legal and expires immediately.
func (b *Builder) SetReadOperationTimeout(d time.Duration) *Builder {
	mustNotBeNegative("read operation timeout", d)
	b.read = d
	return b
}

// SetMutativeOperationTimeout records the timeout for mutative operations
// like put and remove. Panics if d is negative.
func (b *Builder) SetMutativeOperationTimeout(d time.Duration) *Builder {
	mustNotBeNegative("mutative operation timeout", d)
	b.mutative = d
	return b
}

// SetLifecycleOperationTimeout records the timeout for store lifecycle
// operations like validate and destroy. Panics if d is negative.
func (b *Builder) SetLifecycleOperationTimeout(d time.Duration) *Builder {
	mustNotBeNegative("lifecycle operation timeout", d)
	b.lifecycle = d
	return b
}

// Build snapshots the builder's current settings into a new Timeouts
// value. Later setter calls on the builder do not affect values already
// built.
func (b *Builder) Build() Timeouts {
	return Timeouts{
		readOperationTimeout:      b.read,
		mutativeOperationTimeout:  b.mutative,
		lifecycleOperationTimeout: b.lifecycle,
	}
}

func mustNotBeNegative(name string, d time.Duration) {
	if d < 0 {
		panic(fmt.Sprintf("cache config: %s must not be negative, got %s", name, d))
	}
}

// NanosStartingFromNow captures a deadline of timeout from now and returns
// a supplier of the nanoseconds remaining until it, recomputed against the
// monotonic clock on every call. The supplier goes negative once the
// deadline passes; it never clamps or errors, callers treat non-positive
// values as expired. Safe for concurrent use: it only reads the clock and
// subtracts.
func NanosStartingFromNow(timeout time.Duration) func() int64 {
	deadline := time.Now().Add(timeout)
	return func() int64 {
		return int64(time.Until(deadline))
	}
}
