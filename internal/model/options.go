package model

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	Labeler       func(string) string
	OptionLabeler func(string) string
	Endpoint      string
	Method        string
}

func defaultOptions() Options {
	return Options{
		Labeler:       DefaultLabeler,
		OptionLabeler: OptionLabel,
		Endpoint:      "/",
		Method:        "POST",
	}
}
