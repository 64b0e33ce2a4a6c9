package blockchain

// These constants are used to identify a specific RuleError.
var (
	// ErrNegativeTarget indicates the bits of a header encode a target that
	// is zero or negative.
	ErrNegativeTarget = newRuleError("ErrNegativeTarget")

	// ErrTargetTooHigh indicates the bits of a header encode a target above
	// the proof of work limit of the network.
	ErrTargetTooHigh = newRuleError("ErrTargetTooHigh")

	// ErrInvalidPoW indicates that the block hash is above its target.
	ErrInvalidPoW = newRuleError("ErrInvalidPoW")

	// ErrPrevBlockMismatch indicates a header does not build on the header
	// preceding it.
	ErrPrevBlockMismatch = newRuleError("ErrPrevBlockMismatch")
)

// RuleError identifies a rule violation. Callers compare against the values
// above with errors.Is; the errors returned by this package wrap them with
// the details of the offending header.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}
