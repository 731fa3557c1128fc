package planner

import "errors"

// ErrUnknownLearningStyle is returned when a style is outside the enumeration.
var ErrUnknownLearningStyle = errors.New("unknown learning style")
