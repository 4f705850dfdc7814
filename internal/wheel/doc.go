// Package wheel holds the vocabulary shared by the spin engine packages.
//
// It defines the configuration errors every constructor reports, the
// horizontal drag [Direction], and the numeric guards that keep the
// rotational state finite:
//
//   - [ErrInvalidConfiguration]: construction-time failures
//   - [ConfigError]: field-level detail that unwraps to the sentinel
//   - [Sanitize]: maps NaN and ±Inf to zero
//
// # Example
//
//	cat, err := catalog.New("a", "b")
//	if errors.Is(err, wheel.ErrInvalidConfiguration) {
//	    // fewer than three items
//	}
package wheel
