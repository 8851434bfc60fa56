package smsaero

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"unicode/utf8"
)

// Local parameter validation. Anything that passes here is still
// subject to server-side validation; these checks only reject input
// the API is documented to refuse, before any network I/O happens.

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
	minTextLen     = 2
	maxTextLen     = 640
	minAPIKeyLen   = 16
	maxAPIKeyLen   = 32
	minSignLen     = 2
)

func validatePhones(phones []int64) error {
	if len(phones) == 0 {
		return errors.New("number cannot be empty")
	}
	for _, p := range phones {
		if n := len(strconv.FormatInt(p, 10)); n < minPhoneDigits || n > maxPhoneDigits {
			return fmt.Errorf("length of number %d must be between %d and %d digits", p, minPhoneDigits, maxPhoneDigits)
		}
	}
	return nil
}

func validateText(text string) error {
	if n := utf8.RuneCountInString(text); n < minTextLen || n > maxTextLen {
		return fmt.Errorf("length of text must be between %d and %d characters", minTextLen, maxTextLen)
	}
	return nil
}

func validatePage(page int) error {
	if page < 0 {
		return errors.New("page cannot be negative")
	}
	return nil
}

func validateCallbackURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("callback URL must be a valid absolute URL")
	}
	return nil
}

func validateAPIKey(key string) error {
	if n := len(key); n < minAPIKeyLen || n > maxAPIKeyLen {
		return fmt.Errorf("API key length must be between %d and %d characters", minAPIKeyLen, maxAPIKeyLen)
	}
	return nil
}

func validateSignature(sign string) error {
	if utf8.RuneCountInString(sign) < minSignLen {
		return fmt.Errorf("signature length must be at least %d characters", minSignLen)
	}
	return nil
}
