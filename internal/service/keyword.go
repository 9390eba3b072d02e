package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// ValidationReason classifies why a search keyword was rejected.
type ValidationReason string

const (
	ReasonEmpty              ValidationReason = "empty"
	ReasonForbiddenCharacter ValidationReason = "forbidden_character"
	ReasonForbiddenKeyword   ValidationReason = "forbidden_keyword"
)

// ValidationError is the only failure surfaced to API callers: the search
// keyword itself is unusable.
type ValidationError struct {
	Reason ValidationReason
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return "search keyword is empty"
	case ReasonForbiddenCharacter:
		return "search keyword contains a forbidden character"
	case ReasonForbiddenKeyword:
		return "search keyword contains a forbidden word"
	default:
		return fmt.Sprintf("search keyword rejected: %s", string(e.Reason))
	}
}

const forbiddenChars = "%=><"

// Matched anywhere in the keyword, case-insensitively. Intentionally
// conservative: "corporation" trips on OR.
var forbiddenWords = []string{
	"OR", "SELECT", "INSERT", "DELETE", "UPDATE", "CREATE",
	"DROP", "EXEC", "UNION", "FETCH", "DECLARE", "TRUNCATE",
}

// ValidateKeyword checks a raw search keyword and returns the sanitized form.
// The input is URL-decoded best-effort first; a decode failure is logged and
// the raw string is validated instead.
func ValidateKeyword(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", &ValidationError{Reason: ReasonEmpty}
	}

	keyword := raw
	if decoded, err := url.QueryUnescape(raw); err != nil {
		log.Error().Err(err).Str("keyword", raw).Msg("keyword URL decode failed")
	} else {
		keyword = decoded
	}

	if strings.ContainsAny(keyword, forbiddenChars) {
		log.Error().Str("keyword", keyword).Msg("keyword contains forbidden character")
		return "", &ValidationError{Reason: ReasonForbiddenCharacter}
	}

	upper := strings.ToUpper(keyword)
	for _, word := range forbiddenWords {
		if strings.Contains(upper, word) {
			log.Error().Str("keyword", keyword).Str("word", word).Msg("keyword contains forbidden word")
			return "", &ValidationError{Reason: ReasonForbiddenKeyword}
		}
	}

	return keyword, nil
}
