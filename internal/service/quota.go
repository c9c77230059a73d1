package service

import (
	"context"
	"fmt"

	"tickr/internal/model"
	"tickr/internal/repository"
)

const (
	MaxMembers = 5
	MaxAdmins  = 2
)

// memberCounts returns members and admins of ws with the owner included.
// An owner without a member row is counted as one more ADMIN.
func memberCounts(ctx context.Context, tx *repository.Store, ws *model.Workspace) (members, admins int64, err error) {
	members, admins, err = tx.Members.CountByRole(ctx, ws.ID)
	if err != nil {
		return 0, 0, err
	}
	owner, err := tx.Members.Get(ctx, ws.ID, ws.OwnerID)
	if err != nil {
		return 0, 0, err
	}
	if owner == nil {
		members++
		admins++
	}
	return members, admins, nil
}

// checkCanAdd rejects a new member of the given role when it would break
// the workspace limits. Call it in the transaction that inserts the row.
func checkCanAdd(ctx context.Context, tx *repository.Store, ws *model.Workspace, role model.Role) error {
	if ws.IsPersonal {
		return errQuota("Personal workspaces cannot have members")
	}
	members, admins, err := memberCounts(ctx, tx, ws)
	if err != nil {
		return errInternal("Failed to count members", err)
	}
	if members+1 > MaxMembers {
		return errQuota(fmt.Sprintf("Maximum number of members reached (%d)", MaxMembers))
	}
	if role == model.RoleAdmin && admins+1 > MaxAdmins {
		return errQuota(fmt.Sprintf("Maximum number of admins reached (%d)", MaxAdmins))
	}
	return nil
}

// checkRoleChange rejects a promotion to ADMIN over the admin limit.
func checkRoleChange(ctx context.Context, tx *repository.Store, ws *model.Workspace, from, to model.Role) error {
	if to != model.RoleAdmin || from == model.RoleAdmin {
		return nil
	}
	_, admins, err := memberCounts(ctx, tx, ws)
	if err != nil {
		return errInternal("Failed to count members", err)
	}
	if admins+1 > MaxAdmins {
		return errQuota(fmt.Sprintf("Maximum number of admins reached (%d)", MaxAdmins))
	}
	return nil
}
