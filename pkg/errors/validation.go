package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// Priority bounds shared by the constraint engine and input validation.
const (
	PriorityRequired = 1000
	PriorityMin      = 0
)

// ValidatePriority validates a constraint priority and returns it as an int.
//
// Priorities are whole numbers in [0, 1000]; 1000 marks a required
// constraint. Fractional values are rejected even when in range.
func ValidatePriority(value float64) (int, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, New(ErrCodeInvalidPriority, "priority must be a finite number, got %v", value)
	}
	if value != math.Trunc(value) {
		return 0, New(ErrCodeInvalidPriority, "priority must be an integer in the range [0, 1000], got %v", value)
	}
	if value < PriorityMin || value > PriorityRequired {
		return 0, New(ErrCodeInvalidPriority, "priority must be an integer in the range [0, 1000], got %v", value)
	}
	return int(value), nil
}

// ValidatePacking validates a grid packing pattern.
//
// A packing is two three-slot axis patterns separated by a single space,
// for example "_I_ _I_". Each slot is '_' (free, absorbs leftover space)
// or 'I' (fixed at the standard gap). A single three-slot pattern is also
// accepted and applies to one axis.
func ValidatePacking(pattern string) error {
	if pattern == "" {
		return New(ErrCodeInvalidPacking, "packing pattern cannot be empty")
	}

	var axes []string
	switch len(pattern) {
	case 3:
		axes = []string{pattern}
	case 7:
		if pattern[3] != ' ' {
			return New(ErrCodeInvalidPacking, "packing axes must be separated by a space: %q", pattern)
		}
		axes = []string{pattern[:3], pattern[4:]}
	default:
		return New(ErrCodeInvalidPacking, "packing must be 3 or 7 characters long: %q", pattern)
	}

	for _, axis := range axes {
		for _, r := range axis {
			if r != '_' && r != 'I' {
				return New(ErrCodeInvalidPacking, "packing slots must be '_' or 'I': %q", pattern)
			}
		}
	}
	return nil
}

// nameRegex matches identifiers usable as view and scene names.
var nameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// ValidateName validates a view or scene name.
//
// Names appear in constraint text ("header.top == root.top"), so they are
// restricted to identifier characters:
//   - No empty names
//   - No control characters or whitespace
//   - No dots (the attribute separator)
//   - Maximum length of 128 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "name contains whitespace or control characters: %q", name)
		}
	}

	if strings.Contains(name, ".") {
		return New(ErrCodeInvalidInput, "name cannot contain '.': %q", name)
	}

	if !nameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid name: %q", name)
	}

	return nil
}
