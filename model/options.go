package model

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Question types understood by the options validator. Anything else is
// rejected at survey creation but tolerated on read, so rows written by
// older deployments keep round-tripping.
const (
	TypeText           = "text"
	TypeMultipleChoice = "multiple_choice"
	TypeRange          = "range"
)

var ErrUnsupportedQuestionType = errors.New("unsupported question type")

// Options is the decoded form of a question's options payload.
type Options interface {
	questionOptions()
}

// ChoiceOptions is the ordered label list of a multiple_choice question.
type ChoiceOptions []string

// RangeOptions describes a numeric scale with labels for both extremes.
type RangeOptions struct {
	Min    int       `json:"min"`
	Max    int       `json:"max"`
	Labels [2]string `json:"labels"`
}

func (ChoiceOptions) questionOptions() {}
func (RangeOptions) questionOptions()  {}

// DecodeOptions interprets raw against the question type.
// A text question carries no options; a nil result with nil error means
// "options absent".
func DecodeOptions(questionType string, raw json.RawMessage) (Options, error) {
	switch questionType {
	case TypeText:
		return nil, nil

	case TypeMultipleChoice:
		var choices ChoiceOptions
		if err := decodePayload(raw, &choices); err != nil {
			return nil, errors.Wrap(err, "multiple_choice options")
		}
		if len(choices) == 0 {
			return nil, errors.New("multiple_choice options must be a non-empty array of strings")
		}
		return choices, nil

	case TypeRange:
		var payload struct {
			Min    *int     `json:"min"`
			Max    *int     `json:"max"`
			Labels []string `json:"labels"`
		}
		if err := decodePayload(raw, &payload); err != nil {
			return nil, errors.Wrap(err, "range options")
		}
		if payload.Min == nil || payload.Max == nil {
			return nil, errors.New("range options must have integer min and max")
		}
		if *payload.Min >= *payload.Max {
			return nil, errors.Errorf("range options min %d must be less than max %d", *payload.Min, *payload.Max)
		}
		if len(payload.Labels) != 2 {
			return nil, errors.New("range options must have exactly two labels")
		}
		return RangeOptions{
			Min:    *payload.Min,
			Max:    *payload.Max,
			Labels: [2]string{payload.Labels[0], payload.Labels[1]},
		}, nil

	default:
		return nil, errors.Wrap(ErrUnsupportedQuestionType, questionType)
	}
}

// CanonicalOptions validates raw for the question type and returns the
// payload as it should be stored: nil for text questions (whatever the
// caller sent), the input bytes otherwise.
func CanonicalOptions(questionType string, raw json.RawMessage) (json.RawMessage, error) {
	opts, err := DecodeOptions(questionType, raw)
	if err != nil {
		return nil, err
	}
	if opts == nil {
		return nil, nil
	}
	return raw, nil
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return errors.New("missing payload")
	}
	return json.Unmarshal(raw, v)
}
