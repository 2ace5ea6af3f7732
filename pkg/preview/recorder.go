package preview

import "time"

// Recorder receives one observation per exchange. Outcome is "ok" or the
// failure kind of the exchange.
type Recorder interface {
	ObserveRequest(kind Kind, mode Mode, method, outcome string, elapsed time.Duration)
	ObserveHealth(ready bool, elapsed time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) ObserveRequest(Kind, Mode, string, string, time.Duration) {}
func (noopRecorder) ObserveHealth(bool, time.Duration)                       {}

// Outcome labels one exchange result for metrics.
func Outcome(err error) string {
	switch KindOf(err) {
	case nil:
		if err != nil {
			return "precondition"
		}
		return "ok"
	case ErrItemNotFound:
		return "not_found"
	case ErrValidation:
		return "validation_error"
	case ErrBadRequest:
		return "bad_request"
	default:
		return "internal_error"
	}
}
