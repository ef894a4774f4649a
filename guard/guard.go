// Package guard decides whether a principal may act on a resource.
//
// The policy: a principal may act on a resource if it is an admin, or if it
// created the resource. Destructive actions carry an owner-privilege rule:
// when the creator is itself an admin, only that exact admin may proceed, so
// one admin cannot delete another admin's resources while any admin can still
// manage regular users' resources.
//
// Decisions are pure; callers fetch the resource and its creator first.
package guard

import (
	"github.com/jacentio/lattice/auth"
	"github.com/jacentio/lattice/model"
)

// Action classifies the operation being authorized.
type Action int

const (
	// ActionView covers reads.
	ActionView Action = iota

	// ActionEdit covers non-destructive mutations.
	ActionEdit

	// ActionDelete covers destructive mutations and applies the
	// owner-privilege rule for admin-owned resources.
	ActionDelete
)

// Reason explains a denial. NotFound and Forbidden are tracked separately
// for auditability even where the transport reports them alike.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNotFound
	ReasonForbidden
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow is the granted decision.
var Allow = Decision{Allowed: true}

// Deny builds a denial with the given reason.
func Deny(reason Reason) Decision {
	return Decision{Reason: reason}
}

// Authorize decides whether p may perform action on a resource created by
// creator. A nil creator means the resource (or its owner record) is absent.
func Authorize(p auth.Principal, creator *model.User, action Action) Decision {
	if creator == nil {
		return Deny(ReasonNotFound)
	}

	if creator.ID == p.ID {
		return Allow
	}

	if !p.IsAdmin {
		return Deny(ReasonForbidden)
	}

	// Admins manage other users' resources, except destructive actions on
	// resources another admin owns.
	if action == ActionDelete && creator.IsAdmin {
		return Deny(ReasonForbidden)
	}

	return Allow
}
