package accounting

import "strings"

// Direction states whether a transaction increases or decreases the
// account's natural balance.
type Direction string

const (
	DirectionIncrease Direction = "INCREASE"
	DirectionDecrease Direction = "DECREASE"
)

// ErrUnknownDirection indicates a direction token outside the recognized set
type ErrUnknownDirection struct {
	Token string
}

func (e ErrUnknownDirection) Error() string {
	return "unknown direction: " + e.Token
}

// Is implements the errors.Is interface for ErrUnknownDirection
func (e ErrUnknownDirection) Is(target error) bool {
	t, ok := target.(ErrUnknownDirection)
	if !ok {
		return false
	}
	if t.Token == "" {
		return true
	}
	return e.Token == t.Token
}

// ParseDirection resolves a user-supplied direction token. Besides the
// canonical increase/decrease it accepts the labels of earlier revisions of
// the form: "received"/"increased" meant increase, "paid"/"reduced" meant
// decrease.
func ParseDirection(token string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "increase", "increased", "received":
		return DirectionIncrease, nil
	case "decrease", "reduced", "paid":
		return DirectionDecrease, nil
	default:
		return "", ErrUnknownDirection{Token: token}
	}
}
