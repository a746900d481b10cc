package services

import (
	"testing"

	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/valueobjects"
)

func TestEvaluatePublicReadAllowsAnonymous(t *testing.T) {
	acl := valueobjects.ACL{Owner: "owner", Visibility: valueobjects.VisibilityPublic}

	if got := Evaluate(acl, nil, valueobjects.PermissionRead); got != DecisionAllow {
		t.Fatalf("public read should allow anonymous, got %v", got)
	}
	// Public visibility grants reads only.
	if got := Evaluate(acl, nil, valueobjects.PermissionWrite); got != DecisionNeedsAuth {
		t.Fatalf("public write should still need auth, got %v", got)
	}
}

func TestEvaluatePrivateObject(t *testing.T) {
	acl := valueobjects.ACL{Owner: "owner", Visibility: valueobjects.VisibilityPrivate}

	if got := Evaluate(acl, nil, valueobjects.PermissionRead); got != DecisionNeedsAuth {
		t.Fatalf("anonymous should need auth, got %v", got)
	}
	if got := Evaluate(acl, &Principal{UserID: "owner"}, valueobjects.PermissionRead); got != DecisionAllow {
		t.Fatalf("owner should be allowed, got %v", got)
	}
	if got := Evaluate(acl, &Principal{UserID: "ops", Admin: true}, valueobjects.PermissionWrite); got != DecisionAllow {
		t.Fatalf("admin should be allowed, got %v", got)
	}
	if got := Evaluate(acl, &Principal{UserID: "stranger"}, valueobjects.PermissionRead); got != DecisionNeedsEntitlement {
		t.Fatalf("stranger read should defer to entitlements, got %v", got)
	}
	if got := Evaluate(acl, &Principal{UserID: "stranger"}, valueobjects.PermissionWrite); got != DecisionDeny {
		t.Fatalf("stranger write should be denied, got %v", got)
	}
}

func TestEvaluateRules(t *testing.T) {
	acl := valueobjects.ACL{
		Owner:      "owner",
		Visibility: valueobjects.VisibilityPrivate,
		Rules: []valueobjects.Rule{
			{GranteeType: valueobjects.GranteeUser, GranteeID: "editor", Permission: valueobjects.PermissionWrite},
			{GranteeType: valueobjects.GranteePublic, Permission: valueobjects.PermissionRead},
		},
	}

	// A public-grantee rule widens access before authentication is checked.
	if got := Evaluate(acl, nil, valueobjects.PermissionRead); got != DecisionAllow {
		t.Fatalf("public rule should allow anonymous read, got %v", got)
	}
	if got := Evaluate(acl, &Principal{UserID: "editor"}, valueobjects.PermissionWrite); got != DecisionAllow {
		t.Fatalf("user rule should allow the grantee, got %v", got)
	}
	if got := Evaluate(acl, &Principal{UserID: "other"}, valueobjects.PermissionWrite); got != DecisionDeny {
		t.Fatalf("rule must not leak to other users, got %v", got)
	}
}
