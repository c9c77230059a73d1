package service

import (
	"context"
	"strings"

	"tickr/internal/model"
	"tickr/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PersonalWorkspaceName is the name given to every user's own workspace.
const PersonalWorkspaceName = "Personal"

// Identity is a user profile as reported by the identity provider.
type Identity struct {
	UserID    string
	Email     string
	Name      string
	AvatarURL string
}

type UserService struct {
	base
}

func NewUserService(store *repository.Store, log logrus.FieldLogger) *UserService {
	return &UserService{base: newBase(store, log)}
}

// userLock derives the advisory lock key of a user id.
func userLock(userID string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("user:"+userID))
}

// Sync upserts the user and makes sure a personal workspace exists.
func (s *UserService) Sync(ctx context.Context, id Identity) (*model.User, error) {
	if strings.TrimSpace(id.UserID) == "" {
		return nil, errValidation("User id is required")
	}
	email := strings.ToLower(trimmed(id.Email))
	if email == "" {
		return nil, errValidation("User email is required")
	}

	user := &model.User{
		ID:        id.UserID,
		Email:     email,
		Name:      trimmed(id.Name),
		AvatarURL: id.AvatarURL,
	}
	var created, seeded bool
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Lock(ctx, userLock(user.ID)); err != nil {
			return err
		}
		var err error
		if created, err = tx.Users.Upsert(ctx, user); err != nil {
			return err
		}
		personal, err := tx.Workspaces.FindPersonal(ctx, user.ID)
		if err != nil || personal != nil {
			return err
		}
		seeded = true
		return createWorkspace(ctx, tx, &model.Workspace{
			Name:       PersonalWorkspaceName,
			OwnerID:    user.ID,
			IsPersonal: true,
		})
	})
	if err != nil {
		return nil, errInternal("Failed to sync user", err)
	}

	entry := s.log.WithField("user_id", user.ID)
	if created {
		entry.Info("user created")
	}
	if seeded {
		entry.Info("personal workspace created")
	}
	return user, nil
}

// Me returns the caller's stored profile.
func (s *UserService) Me(ctx context.Context, caller Caller) (*model.User, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	user, err := s.store.Users.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, errInternal("Failed to retrieve user", err)
	}
	if user == nil {
		return nil, errNotFound("User not found")
	}
	return user, nil
}

// Ensure provisions the caller on an authenticated request. Claims missing
// from the token keep their stored values, and nothing is written when the
// stored profile already matches.
func (s *UserService) Ensure(ctx context.Context, id Identity) error {
	if strings.TrimSpace(id.UserID) == "" {
		return errUnauthenticated()
	}
	existing, err := s.store.Users.GetByID(ctx, id.UserID)
	if err != nil {
		return errInternal("Failed to retrieve user", err)
	}
	if trimmed(id.Email) == "" {
		if existing == nil {
			return &Error{Kind: KindUnauthenticated, Message: "User is not provisioned"}
		}
		return nil
	}
	if existing != nil {
		id = mergeProfile(existing, id)
	}
	if existing != nil && sameProfile(existing, id) {
		personal, err := s.store.Workspaces.FindPersonal(ctx, id.UserID)
		if err != nil {
			return errInternal("Failed to retrieve workspace", err)
		}
		if personal != nil {
			return nil
		}
	}
	_, err = s.Sync(ctx, id)
	return err
}

// mergeProfile fills the profile fields the token did not carry from the
// stored row.
func mergeProfile(u *model.User, id Identity) Identity {
	if trimmed(id.Name) == "" {
		id.Name = u.Name
	}
	if id.AvatarURL == "" {
		id.AvatarURL = u.AvatarURL
	}
	return id
}

func sameProfile(u *model.User, id Identity) bool {
	return strings.EqualFold(u.Email, trimmed(id.Email)) &&
		u.Name == trimmed(id.Name) &&
		u.AvatarURL == id.AvatarURL
}

// Delete removes the user with everything they own. Memberships elsewhere
// and task assignments are dropped.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errValidation("User id is required")
	}
	var owned int
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Lock(ctx, userLock(userID)); err != nil {
			return err
		}
		workspaces, err := tx.Workspaces.ListOwned(ctx, userID)
		if err != nil {
			return err
		}
		for _, ws := range workspaces {
			if err := tx.Workspaces.DeleteCascade(ctx, ws.ID); err != nil {
				return err
			}
		}
		owned = len(workspaces)
		if err := tx.Members.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := tx.Tasks.ClearAssigneeAll(ctx, userID); err != nil {
			return err
		}
		return tx.Users.Delete(ctx, userID)
	})
	if err != nil {
		return errInternal("Failed to delete user", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "workspaces": owned}).Info("user deleted")
	return nil
}
