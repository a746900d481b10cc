package services

import "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/valueobjects"

type Decision int

const (
	// DecisionDeny is the default: no policy branch granted access.
	DecisionDeny Decision = iota
	DecisionAllow
	// DecisionNeedsAuth means only an authenticated caller could possibly
	// gain access.
	DecisionNeedsAuth
	// DecisionNeedsEntitlement means the ACL itself grants nothing, but a
	// purchase-derived entitlement may. The caller resolves it against the
	// purchase predicate.
	DecisionNeedsEntitlement
)

// Principal is the resolved caller identity; nil means anonymous.
type Principal struct {
	UserID string
	Admin  bool
}

// Evaluate applies the ACL-only part of the access decision. It is pure:
// purchase lookups happen in the query layer, only for the
// needs-entitlement outcome.
func Evaluate(acl valueobjects.ACL, principal *Principal, permission valueobjects.Permission) Decision {
	if acl.Public() && permission == valueobjects.PermissionRead {
		return DecisionAllow
	}
	for _, rule := range acl.Rules {
		if rule.GranteeType == valueobjects.GranteePublic && rule.Permission == permission {
			return DecisionAllow
		}
	}
	if principal == nil {
		return DecisionNeedsAuth
	}
	if principal.Admin {
		return DecisionAllow
	}
	if acl.Owner != "" && acl.Owner == principal.UserID {
		return DecisionAllow
	}
	for _, rule := range acl.Rules {
		if rule.GranteeType == valueobjects.GranteeUser &&
			rule.GranteeID == principal.UserID &&
			rule.Permission == permission {
			return DecisionAllow
		}
	}
	if permission == valueobjects.PermissionRead {
		return DecisionNeedsEntitlement
	}
	return DecisionDeny
}
