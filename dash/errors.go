package dash

import (
	"fmt"
)

type OptionError struct {
	Option  string
	Section string
	Reason  string
}

func (e OptionError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("option %s: %s", e.Option, e.Reason)
	}
	return fmt.Sprintf("option %s in section %s: %s", e.Option, e.Section, e.Reason)
}

type DecodeError struct {
	Message string
}

func (e DecodeError) Error() string {
	return e.Message
}

// ChartError ties a drawing failure to the chart that caused it.
type ChartError struct {
	ID  string
	Err error
}

func (e ChartError) Error() string {
	return fmt.Sprintf("chart %s: %s", e.ID, e.Err)
}

func (e ChartError) Unwrap() error {
	return e.Err
}
