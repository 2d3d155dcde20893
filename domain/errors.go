package domain

import (
	"errors"
	"fmt"
)

// InvalidInputError reports a malformed or degenerate dataset or argument.
type InvalidInputError struct {
	Dataset   string
	LearnerID int
	Reason    string
}

func (e *InvalidInputError) Error() string {
	switch {
	case e.Dataset != "" && e.LearnerID != 0:
		return fmt.Sprintf("invalid input in dataset %q (learner %d): %s", e.Dataset, e.LearnerID, e.Reason)
	case e.Dataset != "":
		return fmt.Sprintf("invalid input in dataset %q: %s", e.Dataset, e.Reason)
	default:
		return "invalid input: " + e.Reason
	}
}

// OutOfRangeError reports a learner id with no row in the relevant dataset.
// Min and Max are the advertised range when known.
type OutOfRangeError struct {
	Dataset   string
	LearnerID int
	Min       int
	Max       int
}

func (e *OutOfRangeError) Error() string {
	msg := fmt.Sprintf("learner %d out of range", e.LearnerID)
	if e.Max > 0 {
		msg += fmt.Sprintf(" [%d, %d]", e.Min, e.Max)
	}
	if e.Dataset != "" {
		msg += fmt.Sprintf(" in dataset %q", e.Dataset)
	}
	return msg
}

func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}

func IsOutOfRange(err error) bool {
	var target *OutOfRangeError
	return errors.As(err, &target)
}
