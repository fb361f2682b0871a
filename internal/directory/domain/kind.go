package domain

import (
	"fmt"
	"strings"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
)

// Kind identifies one of the three listing variants.
type Kind string

const (
	KindConcierge Kind = "concierge"
	KindCleaning  Kind = "cleaning"
	KindDesigner  Kind = "designer"
)

// AllKinds lists the variants in display order.
var AllKinds = []Kind{KindConcierge, KindCleaning, KindDesigner}

// ParseKind accepts the canonical names plus the plural and French route aliases.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "concierge", "concierges", "conciergerie", "conciergeries":
		return KindConcierge, nil
	case "cleaning", "cleanings", "menage", "ménage":
		return KindCleaning, nil
	case "designer", "designers", "interior-designer", "interior-designers":
		return KindDesigner, nil
	}
	return "", fmt.Errorf("unknown listing kind %q: %w", value, apperrors.ErrValidation)
}

func (k Kind) String() string {
	return string(k)
}
