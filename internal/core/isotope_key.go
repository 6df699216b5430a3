package core

import (
	"strconv"
	"strings"

	"nuclidex/pkg/domain"
)

const isotopeSeparator = "-"

// ParseIsotopeKey splits a "<Symbol>-<MassNumber>" identifier. The mass number
// must be a positive base-10 integer.
func ParseIsotopeKey(id string) (domain.IsotopeKey, error) {
	raw := strings.TrimSpace(id)
	idx := strings.LastIndex(raw, isotopeSeparator)
	if idx < 0 {
		return domain.IsotopeKey{}, &domain.ParseError{Input: id, Reason: "missing separator"}
	}
	symbol := strings.TrimSpace(raw[:idx])
	massText := strings.TrimSpace(raw[idx+len(isotopeSeparator):])
	if symbol == "" {
		return domain.IsotopeKey{}, &domain.ParseError{Input: id, Reason: "missing element symbol"}
	}
	if massText == "" || strings.IndexFunc(massText, notDigit) >= 0 {
		return domain.IsotopeKey{}, &domain.ParseError{Input: id, Reason: "mass number is not numeric"}
	}
	mass, err := strconv.Atoi(massText)
	if err != nil {
		return domain.IsotopeKey{}, &domain.ParseError{Input: id, Reason: "mass number out of range"}
	}
	if mass <= 0 {
		return domain.IsotopeKey{}, &domain.ParseError{Input: id, Reason: "mass number must be positive"}
	}
	return domain.IsotopeKey{Symbol: symbol, MassNumber: mass}, nil
}

func notDigit(r rune) bool { return r < '0' || r > '9' }
