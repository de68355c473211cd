package protocol

import "errors"

var (
	// ErrValueKind is returned when a default value does not match its parameter's kind.
	ErrValueKind = errors.New("value kind does not match parameter")

	// ErrNotAllowed is returned when an enumerated default is not among the allowed values.
	ErrNotAllowed = errors.New("value not allowed")

	// ErrNotSampleSet is returned when allowed samples are not typed opil:SampleSet.
	ErrNotSampleSet = errors.New("allowed samples must be a sample set")
)
