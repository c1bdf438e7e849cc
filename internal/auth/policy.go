package auth

import (
	apperrors "github.com/spec-kit/marketplace/pkg/util"
)

// Action classifies resource operations for authorization.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// rule describes what an action demands from the caller.
type rule struct {
	requiredAuthority string
	requireOwnership  bool
}

// Policy decides per-action access from a data-driven rule table. Reads are
// open, creation needs the elevated seller authority, and mutation
// additionally needs ownership unless the admin override is present.
type Policy struct {
	rules             map[Action]rule
	overrideAuthority string
}

// NewPolicy builds the marketplace rule table.
func NewPolicy() *Policy {
	return &Policy{
		rules: map[Action]rule{
			ActionRead:   {},
			ActionCreate: {requiredAuthority: AuthoritySeller},
			ActionUpdate: {requiredAuthority: AuthoritySeller, requireOwnership: true},
			ActionDelete: {requiredAuthority: AuthoritySeller, requireOwnership: true},
		},
		overrideAuthority: AuthorityAdmin,
	}
}

// Authorize checks the identity against the rule for the action. ownerID is
// the owner recorded on the resource at creation time; it is compared by
// strict equality against the principal. A valid identity lacking rights is
// reported as forbidden, distinct from the unauthenticated case.
func (p *Policy) Authorize(identity *Identity, action Action, ownerID string) error {
	r, known := p.rules[action]
	if !known {
		return apperrors.NewForbidden("unknown action")
	}
	if r.requiredAuthority == "" && !r.requireOwnership {
		return nil
	}
	if identity == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if identity.HasAuthority(p.overrideAuthority) {
		return nil
	}
	if !identity.HasAuthority(r.requiredAuthority) {
		return apperrors.NewForbidden("insufficient role")
	}
	if r.requireOwnership && identity.Principal != ownerID {
		return apperrors.NewForbidden("not the resource owner")
	}
	return nil
}
