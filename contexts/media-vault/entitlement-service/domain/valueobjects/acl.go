package valueobjects

type Permission string

const (
	PermissionRead  Permission = "read"
	PermissionWrite Permission = "write"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

type GranteeType string

const (
	GranteeUser   GranteeType = "user"
	GranteePublic GranteeType = "public"
)

// Rule grants one permission to one grantee. Rules only ever widen access.
type Rule struct {
	GranteeType GranteeType
	GranteeID   string
	Permission  Permission
}

// ACL is the access policy attached to a stored object. It is immutable
// after upload.
type ACL struct {
	Owner      string
	Visibility Visibility
	Rules      []Rule
}

func (a ACL) Public() bool {
	return a.Visibility == VisibilityPublic
}
