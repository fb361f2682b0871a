package domain

import (
	"fmt"
	"strings"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
)

// Status is the moderation state shared by listings and reviews.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus accepts only the three known states.
func ParseStatus(value string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	}
	return "", fmt.Errorf("unknown status %q: %w", value, apperrors.ErrValidation)
}

// ParseDecision parses an admin decision. Only terminal states are accepted.
func ParseDecision(value string) (Status, error) {
	status, err := ParseStatus(value)
	if err != nil {
		return "", err
	}
	if status == StatusPending {
		return "", fmt.Errorf("cannot move back to pending: %w", apperrors.ErrValidation)
	}
	return status, nil
}

// IsPublic reports whether entities in this state are visible to visitors.
func (s Status) IsPublic() bool {
	return s == StatusApproved
}

// CanTransitionTo reports whether s -> target is an allowed state change.
// Moving to the current state is not a transition; callers treat it as a no-op.
func (s Status) CanTransitionTo(target Status) bool {
	return s == StatusPending && (target == StatusApproved || target == StatusRejected)
}

// Transition validates a move from s to target.
// It returns changed=false for an idempotent repeat of the current state.
func (s Status) Transition(target Status) (changed bool, err error) {
	if s == target {
		return false, nil
	}
	if !s.CanTransitionTo(target) {
		return false, fmt.Errorf("%s -> %s: %w", s, target, apperrors.ErrInvalidTransition)
	}
	return true, nil
}

func (s Status) String() string {
	return string(s)
}
