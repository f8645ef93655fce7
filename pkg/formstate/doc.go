// Package formstate holds the values a renderer has collected for one form and
// validates them into a prediction request. Values are keyed by field name;
// errors carry one message per field and are replaced wholesale on every
// Submit.
package formstate
