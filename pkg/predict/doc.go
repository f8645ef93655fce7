// Package predict sends validated attribute requests to the remote prediction
// service and maps its reply onto a Category. Failures are classified as
// *NetworkError (transport or non-2xx) or *ResponseShapeError (a 2xx reply
// that does not carry a label). No request is ever retried.
package predict
