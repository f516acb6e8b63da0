package discord

import (
	"eventbot/internal/domain"
	"eventbot/internal/ports/output"
)

// ErrorMessageID maps an error to its translation key: errors.<code> for domain
// errors, errors.generic for everything else.
func ErrorMessageID(err error) string {
	if code := domain.Code(err); code != "" {
		return "errors." + code
	}
	return "errors.generic"
}

// ErrorMessage resolves err to a user-facing message.
func ErrorMessage(t output.T, locale string, err error) string {
	if err == nil {
		return ""
	}
	return t.T(locale, ErrorMessageID(err), nil)
}
