package weather

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindCityNotFound
	KindInvalidAPIKey
	KindUnknownAPI
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network_error"
	case KindCityNotFound:
		return "city_not_found"
	case KindInvalidAPIKey:
		return "invalid_api_key"
	case KindUnknownAPI:
		return "unknown_api_error"
	case KindValidation:
		return "validation_error"
	default:
		return "unknown"
	}
}

const (
	msgNetwork       = "Could not reach the weather service. Check your internet connection."
	msgCityNotFound  = "Could not find the city “%s” in that country. Check the spelling."
	msgInvalidAPIKey = "There is a problem with the API key. (This is on the developer side.)"
	msgFallback      = "Something went wrong while getting the weather."
	msgValidation    = "Please select a country and enter a city name."
)

// LookupError is the only error type a lookup returns. Message is safe to
// show to the user; Err keeps the underlying cause for logs.
type LookupError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	return e.Message
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of a *LookupError anywhere in err's chain.
func KindOf(err error) ErrorKind {
	var lerr *LookupError
	if errors.As(err, &lerr) {
		return lerr.Kind
	}
	return KindUnknown
}

// UserMessage returns the text to show for err. Errors that are not
// lookup errors get the generic fallback so internals never reach the page.
func UserMessage(err error) string {
	var lerr *LookupError
	if errors.As(err, &lerr) {
		return lerr.Message
	}
	return msgFallback
}

func networkError(err error) *LookupError {
	return &LookupError{Kind: KindNetwork, Message: msgNetwork, Err: err}
}

func cityNotFoundError(city string) *LookupError {
	return &LookupError{Kind: KindCityNotFound, Message: fmt.Sprintf(msgCityNotFound, city)}
}

func invalidAPIKeyError() *LookupError {
	return &LookupError{Kind: KindInvalidAPIKey, Message: msgInvalidAPIKey}
}

func unknownAPIError(message string, err error) *LookupError {
	if message == "" {
		message = msgFallback
	}
	return &LookupError{Kind: KindUnknownAPI, Message: message, Err: err}
}

// ValidationError reports a form submission without a country or a city.
func ValidationError() *LookupError {
	return &LookupError{Kind: KindValidation, Message: msgValidation}
}
