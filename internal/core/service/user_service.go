package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/ports"
)

// UserService drives the admin users page.
type UserService struct {
	session *Session
	repo    ports.UserRepository
	logger  zerolog.Logger
}

func NewUserService(s *Session) *UserService {
	return &UserService{session: s, repo: s.remote.Users, logger: s.log}
}

// List fetches every user. Only admins may open the page.
func (s *UserService) List(ctx context.Context) (UsersView, error) {
	user, epoch, err := s.admin()
	if err != nil {
		return UsersView{}, err
	}
	_, _, coll := s.session.collections()

	done := coll.BeginLoad()
	items, err := s.repo.List(ctx)
	done()
	if err != nil {
		return UsersView{}, s.session.Fail(err)
	}
	if err := s.session.settle(ctx, epoch); err != nil {
		return UsersView{}, err
	}
	coll.Replace(items)
	return newUsersView(user.Role, coll.Items(), coll.Loading()), nil
}

// Update applies the admin user form.
func (s *UserService) Update(ctx context.Context, id string, in ports.UserEdit) (UsersView, error) {
	if in.Role != "" && !in.Role.Valid() {
		return UsersView{}, domain.ErrInvalidRole
	}
	if in.Status != "" && !in.Status.Valid() {
		return UsersView{}, fmt.Errorf("user status %q: %w", in.Status, domain.ErrInvalidTransition)
	}
	return s.mutate(ctx, id, func(u domain.User) (domain.User, error) {
		if name := strings.TrimSpace(in.Name); name != "" {
			u.Name = name
		}
		if in.Role != "" {
			u.Role = in.Role
		}
		if in.Status != "" {
			u.Status = in.Status
		}
		return u, nil
	})
}

// Deactivate soft deletes a user account.
func (s *UserService) Deactivate(ctx context.Context, id string) (UsersView, error) {
	return s.setStatus(ctx, id, domain.StatusInactive)
}

// Activate restores a soft deleted user account.
func (s *UserService) Activate(ctx context.Context, id string) (UsersView, error) {
	return s.setStatus(ctx, id, domain.StatusActive)
}

func (s *UserService) setStatus(ctx context.Context, id string, status domain.Status) (UsersView, error) {
	return s.mutate(ctx, id, func(u domain.User) (domain.User, error) {
		if !u.Status.CanTransitionTo(status) {
			return u, fmt.Errorf("user %s to %s: %w", u.ID, status, domain.ErrInvalidTransition)
		}
		return u.WithStatus(status), nil
	})
}

// mutate PUTs the changed user and splices the result into the list.
func (s *UserService) mutate(ctx context.Context, id string, change func(domain.User) (domain.User, error)) (UsersView, error) {
	user, epoch, err := s.admin()
	if err != nil {
		return UsersView{}, err
	}
	_, _, coll := s.session.collections()

	current, ok := coll.Find(id)
	if !ok {
		got, err := s.repo.Get(ctx, id)
		if err != nil {
			return UsersView{}, s.session.Fail(err)
		}
		current = *got
	}
	next, err := change(current)
	if err != nil {
		return UsersView{}, err
	}
	updated, err := s.repo.Update(ctx, next)
	if err != nil {
		return UsersView{}, s.session.Fail(err)
	}
	if err := s.session.settle(ctx, epoch); err != nil {
		return UsersView{}, err
	}
	coll.Splice(*updated)
	s.logger.Info().Str("user", updated.ID).Str("role", string(updated.Role)).Str("status", string(updated.Status)).Msg("user updated")
	return newUsersView(user.Role, coll.Items(), coll.Loading()), nil
}

func (s *UserService) admin() (domain.User, uint64, error) {
	user, epoch, err := s.session.begin()
	if err != nil {
		return user, epoch, err
	}
	if !domain.CanManageUsers(user.Role) {
		return user, epoch, domain.ErrForbidden
	}
	return user, epoch, nil
}
