package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/focusflow/internal/models"
)

var (
	ErrNotFound    = errors.New("no match")
	ErrAmbiguousID = errors.New("ambiguous id")
)

// ShortIDLen is how many id characters list commands print
const ShortIDLen = 8

// ShortID trims an id for display
func ShortID(id string) string {
	if len(id) <= ShortIDLen {
		return id
	}
	return id[:ShortIDLen]
}

// MatchID resolves a full id or unique prefix against ids
func MatchID(kind string, ids []string, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%s id cannot be empty", kind)
	}
	var matches []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s %q", ErrNotFound, kind, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %q matches %d %ss", ErrAmbiguousID, prefix, len(matches), kind)
	}
}

// IDs extracts the ids of items
func IDs[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}

// ParseCategory accepts a task category case-insensitively
func ParseCategory(s string) (models.TaskCategory, error) {
	for _, c := range []models.TaskCategory{models.CategoryNIMCET, models.CategoryBCA, models.CategoryPersonal} {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category %q (expected NIMCET, BCA or Personal)", s)
}

// ParsePriority accepts low, medium or high case-insensitively
func ParsePriority(s string) (models.Priority, error) {
	p := models.Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q (expected low, medium or high)", s)
	}
	return p, nil
}

// Confirm asks a y/N question on the command's input. Anything but an
// explicit yes, including a read error, declines.
func Confirm(ctx *Context, question string) bool {
	ctx.Printf("%s [y/N]: ", question)
	response, err := bufio.NewReader(ctx.In).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
