package recommender

import "errors"

// ErrGenerationFailed is the only failure shown to the end user
var ErrGenerationFailed = errors.New("could not generate recommendations, try again")

var (
	errEmptyCatalog    = errors.New("catalog is empty")
	errEmptyResponse   = errors.New("model returned an empty response")
	errNoKnownProducts = errors.New("model selected no products from the catalog")
)

// GenerationError hides the root cause behind ErrGenerationFailed.
// The cause stays reachable through errors.Unwrap for diagnostics.
type GenerationError struct {
	Cause error
}

// Failed wraps cause into a GenerationError
func Failed(cause error) error {
	return &GenerationError{Cause: cause}
}

func (e *GenerationError) Error() string {
	return ErrGenerationFailed.Error()
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
