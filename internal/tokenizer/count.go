package tokenizer

import (
	"errors"
	"unicode/utf8"
)

// CountResult captures the outcome of counting rendered text.
type CountResult struct {
	Tokens     int
	Characters int
	Counted    bool
}

// CountText estimates tokens for text using counter. Text that is not valid
// UTF-8 is reported as not counted.
func CountText(counter Counter, text string) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errors.New("nil tokenizer counter")
	}
	characters := utf8.RuneCountInString(text)
	if !utf8.ValidString(text) {
		return CountResult{Characters: characters}, nil
	}
	tokens, err := counter.CountString(text)
	if err != nil {
		return CountResult{}, err
	}
	return CountResult{Tokens: tokens, Characters: characters, Counted: true}, nil
}
