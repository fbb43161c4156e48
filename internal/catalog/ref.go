package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"sppgmenu/internal/nutrition"
)

var (
	// ErrInvalidRef is returned for references that are not "<kind>:<id>".
	ErrInvalidRef = errors.New("catalog: invalid item reference")
	// ErrItemNotFound covers both missing items and items owned by another SPPG.
	ErrItemNotFound = errors.New("catalog: item not found")
	// ErrInvalidStatus is returned for a status filter that is not a menu lifecycle status.
	ErrInvalidStatus = errors.New("catalog: invalid menu status")
	// ErrUnknownSppg is returned when the tenant code does not exist or is inactive.
	ErrUnknownSppg = errors.New("catalog: unknown sppg")
)

// Ref points at one selectable catalog record.
type Ref struct {
	Kind nutrition.ItemKind `json:"kind"`
	ID   uint               `json:"id"`
}

// String renders the reference in the "<kind>:<id>" form ParseRef accepts.
func (r Ref) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

// ParseRef parses "menu:12" or "recipe:3".
func ParseRef(value string) (Ref, error) {
	kind, id, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return Ref{}, fmt.Errorf("%w: %q", ErrInvalidRef, value)
	}

	ref := Ref{Kind: nutrition.ItemKind(strings.ToLower(kind))}
	if ref.Kind != nutrition.KindMenu && ref.Kind != nutrition.KindRecipe {
		return Ref{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidRef, kind)
	}

	parsed, err := strconv.ParseUint(id, 10, 64)
	if err != nil || parsed == 0 {
		return Ref{}, fmt.Errorf("%w: bad id %q", ErrInvalidRef, id)
	}
	ref.ID = uint(parsed)
	return ref, nil
}

// ParseRefs parses every value, stopping at the first invalid one.
func ParseRefs(values []string) ([]Ref, error) {
	refs := make([]Ref, 0, len(values))
	for _, value := range values {
		ref, err := ParseRef(value)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
