package predict

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork classifies transport failures and non-2xx replies.
	ErrNetwork = errors.New("predict: network failure")
	// ErrResponseShape classifies 2xx replies that carry no usable label.
	ErrResponseShape = errors.New("predict: unexpected response shape")
	// ErrInFlight is returned by Guard while another prediction is running.
	ErrInFlight = errors.New("predict: prediction already in flight")
)

// NetworkError reports a failed exchange with the service. Status is zero when
// no response was received.
type NetworkError struct {
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", ErrNetwork, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: status %d", ErrNetwork, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", ErrNetwork, e.Err)
	default:
		return ErrNetwork.Error()
	}
}

// Is matches ErrNetwork.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ResponseShapeError reports a 2xx reply the client could not interpret.
type ResponseShapeError struct {
	Reason string
	Body   string
}

func (e *ResponseShapeError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %s", ErrResponseShape, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %q", ErrResponseShape, e.Reason, e.Body)
}

// Is matches ErrResponseShape.
func (e *ResponseShapeError) Is(target error) bool {
	return target == ErrResponseShape
}
