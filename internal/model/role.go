package model

import "strings"

// Role is a workspace role. Roles are totally ordered: VIEWER < MEMBER < ADMIN.
type Role string

const (
	RoleNone   Role = ""
	RoleViewer Role = "VIEWER" // может только просматривать
	RoleMember Role = "MEMBER" // может редактировать задачи и колонки
	RoleAdmin  Role = "ADMIN"  // управляет участниками и пространством
)

func (r Role) rank() int {
	switch r {
	case RoleViewer:
		return 1
	case RoleMember:
		return 2
	case RoleAdmin:
		return 3
	}
	return 0
}

// AtLeast reports whether r grants everything min grants.
// RoleNone never satisfies a check, including AtLeast(RoleNone).
func (r Role) AtLeast(min Role) bool {
	if r.rank() == 0 {
		return false
	}
	return r.rank() >= min.rank()
}

func (r Role) Valid() bool {
	return r.rank() > 0
}

func (r Role) String() string {
	if r == RoleNone {
		return "NONE"
	}
	return string(r)
}

// ParseRole accepts any letter case.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}
