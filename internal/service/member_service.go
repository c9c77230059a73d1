package service

import (
	"context"
	"strings"
	"time"

	"tickr/internal/model"
	"tickr/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type MemberService struct {
	base
}

func NewMemberService(store *repository.Store, log logrus.FieldLogger) *MemberService {
	return &MemberService{base: newBase(store, log)}
}

// MemberView is a membership joined with its user.
type MemberView struct {
	UserID    string
	Email     string
	Name      string
	AvatarURL string
	Role      model.Role
	IsOwner   bool
	JoinedAt  time.Time
}

func memberView(m model.WorkspaceMember, ws *model.Workspace) MemberView {
	return MemberView{
		UserID:    m.UserID,
		Email:     m.User.Email,
		Name:      m.User.Name,
		AvatarURL: m.User.AvatarURL,
		Role:      m.Role,
		IsOwner:   ws.IsOwner(m.UserID),
		JoinedAt:  m.JoinedAt,
	}
}

// List returns the workspace members. An owner without a member row is
// listed first as ADMIN.
func (s *MemberService) List(ctx context.Context, caller Caller, workspaceID uuid.UUID) ([]MemberView, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	access, err := s.auth.Require(ctx, caller, workspaceID, model.RoleViewer)
	if err != nil {
		return nil, err
	}
	ws := access.Workspace

	members, err := s.store.Members.List(ctx, workspaceID)
	if err != nil {
		return nil, errInternal("Failed to retrieve members", err)
	}

	views := make([]MemberView, 0, len(members)+1)
	ownerListed := false
	for _, m := range members {
		if ws.IsOwner(m.UserID) {
			ownerListed = true
		}
		views = append(views, memberView(m, ws))
	}
	if !ownerListed {
		owner, err := s.store.Users.GetByID(ctx, ws.OwnerID)
		if err != nil {
			return nil, errInternal("Failed to retrieve owner", err)
		}
		view := MemberView{UserID: ws.OwnerID, Role: model.RoleAdmin, IsOwner: true, JoinedAt: ws.CreatedAt}
		if owner != nil {
			view.Email, view.Name, view.AvatarURL = owner.Email, owner.Name, owner.AvatarURL
		}
		views = append([]MemberView{view}, views...)
	}
	return views, nil
}

// Invite offers membership to an email address. A pending invite for the same
// address is reused with the new role.
func (s *MemberService) Invite(ctx context.Context, caller Caller, workspaceID uuid.UUID, email string, role model.Role) (*model.WorkspaceInvite, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	email = strings.ToLower(trimmed(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errValidation("A valid email is required")
	}
	if !role.Valid() {
		return nil, errValidation("Role must be ADMIN, MEMBER or VIEWER")
	}
	access, err := s.auth.Require(ctx, caller, workspaceID, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	ws := access.Workspace

	invitee, err := s.store.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, errInternal("Failed to find user", err)
	}
	if invitee != nil {
		if ws.IsOwner(invitee.ID) {
			return nil, errValidation("User is already a member of this workspace")
		}
		existing, err := s.store.Members.Get(ctx, workspaceID, invitee.ID)
		if err != nil {
			return nil, errInternal("Failed to check membership", err)
		}
		if existing != nil {
			return nil, errValidation("User is already a member of this workspace")
		}
	}

	var invite *model.WorkspaceInvite
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Lock(ctx, workspaceID); err != nil {
			return err
		}
		if err := checkCanAdd(ctx, tx, ws, role); err != nil {
			return err
		}
		pending, err := tx.Invites.FindPending(ctx, workspaceID, email)
		if err != nil {
			return err
		}
		if pending != nil {
			pending.Role = role
			invite = pending
			return tx.Invites.UpdateRole(ctx, pending.ID, role)
		}
		invite = &model.WorkspaceInvite{
			WorkspaceID: workspaceID,
			Email:       email,
			Role:        role,
			Status:      model.InvitePending,
			InvitedByID: caller.UserID,
		}
		return tx.Invites.Create(ctx, invite)
	})
	if err != nil {
		return nil, translate(err, "Failed to create invitation")
	}

	s.log.WithFields(logrus.Fields{"workspace_id": workspaceID, "invite_id": invite.ID, "role": role}).Info("invitation sent")
	return invite, nil
}

func (s *MemberService) ListInvites(ctx context.Context, caller Caller, workspaceID uuid.UUID) ([]model.WorkspaceInvite, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	if _, err := s.auth.Require(ctx, caller, workspaceID, model.RoleAdmin); err != nil {
		return nil, err
	}
	invites, err := s.store.Invites.ListPendingByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, errInternal("Failed to retrieve invitations", err)
	}
	return invites, nil
}

func (s *MemberService) RevokeInvite(ctx context.Context, caller Caller, workspaceID, inviteID uuid.UUID) error {
	if !caller.authenticated() {
		return errUnauthenticated()
	}
	if _, err := s.auth.Require(ctx, caller, workspaceID, model.RoleAdmin); err != nil {
		return err
	}
	invite, err := s.store.Invites.GetByID(ctx, inviteID)
	if err != nil {
		return translate(err, "Failed to retrieve invitation")
	}
	if invite.WorkspaceID != workspaceID {
		return errNotFound("Invitation not found")
	}
	return translate(s.store.Invites.Delete(ctx, inviteID), "Failed to revoke invitation")
}

// ChangeRole sets a member's role. The owner's role is fixed.
func (s *MemberService) ChangeRole(ctx context.Context, caller Caller, workspaceID uuid.UUID, userID string, role model.Role) (*MemberView, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	if !role.Valid() {
		return nil, errValidation("Role must be ADMIN, MEMBER or VIEWER")
	}
	access, err := s.auth.Require(ctx, caller, workspaceID, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	ws := access.Workspace
	if ws.IsOwner(userID) {
		return nil, errValidation("The workspace owner's role cannot be changed")
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Lock(ctx, workspaceID); err != nil {
			return err
		}
		member, err := tx.Members.Get(ctx, workspaceID, userID)
		if err != nil {
			return err
		}
		if member == nil {
			return repository.ErrMemberNotFound
		}
		if err := checkRoleChange(ctx, tx, ws, member.Role, role); err != nil {
			return err
		}
		return tx.Members.UpdateRole(ctx, workspaceID, userID, role)
	})
	if err != nil {
		return nil, translate(err, "Failed to update member role")
	}

	members, err := s.store.Members.List(ctx, workspaceID)
	if err != nil {
		return nil, errInternal("Failed to retrieve members", err)
	}
	for _, m := range members {
		if m.UserID == userID {
			view := memberView(m, ws)
			return &view, nil
		}
	}
	return nil, errNotFound("Member not found")
}

// Remove drops a member. Admins may remove anyone but the owner; any member
// may remove themselves.
func (s *MemberService) Remove(ctx context.Context, caller Caller, workspaceID uuid.UUID, userID string) error {
	if !caller.authenticated() {
		return errUnauthenticated()
	}
	min := model.RoleAdmin
	if userID == caller.UserID {
		min = model.RoleViewer
	}
	access, err := s.auth.Require(ctx, caller, workspaceID, min)
	if err != nil {
		return err
	}
	if access.Workspace.IsOwner(userID) {
		return errValidation("The workspace owner cannot be removed")
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Members.Delete(ctx, workspaceID, userID); err != nil {
			return err
		}
		return tx.Tasks.ClearAssignee(ctx, workspaceID, userID)
	})
	if err != nil {
		return translate(err, "Failed to remove member")
	}

	s.log.WithFields(logrus.Fields{"workspace_id": workspaceID, "member_id": userID, "user_id": caller.UserID}).Info("member removed")
	return nil
}

// callerEmail returns the stored email of the caller.
func (s *MemberService) callerEmail(ctx context.Context, caller Caller) (string, error) {
	user, err := s.store.Users.GetByID(ctx, caller.UserID)
	if err != nil {
		return "", errInternal("Failed to retrieve user", err)
	}
	if user == nil {
		return "", errUnauthenticated()
	}
	return user.Email, nil
}

// Pending lists the invitations addressed to the caller's email.
func (s *MemberService) Pending(ctx context.Context, caller Caller) ([]model.WorkspaceInvite, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	email, err := s.callerEmail(ctx, caller)
	if err != nil {
		return nil, err
	}
	invites, err := s.store.Invites.ListPendingByEmail(ctx, email)
	if err != nil {
		return nil, errInternal("Failed to retrieve invitations", err)
	}
	return invites, nil
}

func (s *MemberService) addressedInvite(ctx context.Context, caller Caller, inviteID uuid.UUID) (*model.WorkspaceInvite, error) {
	email, err := s.callerEmail(ctx, caller)
	if err != nil {
		return nil, err
	}
	invite, err := s.store.Invites.GetByID(ctx, inviteID)
	if err != nil {
		return nil, translate(err, "Failed to retrieve invitation")
	}
	if !strings.EqualFold(invite.Email, email) {
		return nil, errForbidden("This invitation was sent to a different email")
	}
	return invite, nil
}

// Accept resolves an invitation into a membership. Accepting again is a
// no-op for the membership and leaves the invite ACCEPTED.
func (s *MemberService) Accept(ctx context.Context, caller Caller, inviteID uuid.UUID) (*model.WorkspaceInvite, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	invite, err := s.addressedInvite(ctx, caller, inviteID)
	if err != nil {
		return nil, err
	}
	if invite.Status == model.InviteDeclined {
		return nil, errValidation("This invitation was declined")
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Lock(ctx, invite.WorkspaceID); err != nil {
			return err
		}
		ws, err := tx.Workspaces.GetByID(ctx, invite.WorkspaceID)
		if err != nil {
			return err
		}
		existing, err := tx.Members.Get(ctx, ws.ID, caller.UserID)
		if err != nil {
			return err
		}
		if existing == nil && !ws.IsOwner(caller.UserID) {
			if err := checkCanAdd(ctx, tx, ws, invite.Role); err != nil {
				return err
			}
			if err := tx.Members.Create(ctx, &model.WorkspaceMember{
				WorkspaceID: ws.ID,
				UserID:      caller.UserID,
				Role:        invite.Role,
			}); err != nil {
				return err
			}
		}
		return tx.Invites.SetStatus(ctx, invite.ID, model.InviteAccepted)
	})
	if err != nil {
		return nil, translate(err, "Failed to accept invitation")
	}

	invite.Status = model.InviteAccepted
	s.log.WithFields(logrus.Fields{"workspace_id": invite.WorkspaceID, "invite_id": invite.ID, "user_id": caller.UserID}).Info("invitation accepted")
	return invite, nil
}

func (s *MemberService) Decline(ctx context.Context, caller Caller, inviteID uuid.UUID) (*model.WorkspaceInvite, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	invite, err := s.addressedInvite(ctx, caller, inviteID)
	if err != nil {
		return nil, err
	}
	switch invite.Status {
	case model.InviteAccepted:
		return nil, errValidation("This invitation was already accepted")
	case model.InviteDeclined:
		return invite, nil
	}

	if err := s.store.Invites.SetStatus(ctx, invite.ID, model.InviteDeclined); err != nil {
		return nil, errInternal("Failed to decline invitation", err)
	}
	invite.Status = model.InviteDeclined
	return invite, nil
}
