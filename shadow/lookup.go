package shadow

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// TryLookup runs fn inside a failure boundary. Errors and panics raised by fn
// are logged at debug level and reported as absent, never propagated. A nil
// result is absent too.
func TryLookup[T any](logger *logrus.Logger, name string, fn func() (T, error)) (result T, ok bool) {
	var zero T
	if fn == nil {
		return zero, false
	}
	if logger == nil {
		logger = logrus.New()
	}

	defer func() {
		if r := recover(); r != nil {
			logger.WithFields(logrus.Fields{
				"lookup": name,
				"panic":  fmt.Sprint(r),
			}).Debug("Lookup panicked, treating as absent")
			result, ok = zero, false
		}
	}()

	v, err := fn()
	if err != nil {
		logger.WithFields(logrus.Fields{
			"lookup": name,
			"error":  err,
		}).Debug("Lookup failed, treating as absent")
		return zero, false
	}
	if any(v) == nil {
		logger.WithField("lookup", name).Debug("Lookup returned nil, treating as absent")
		return zero, false
	}
	return v, true
}
