package store

import (
	"context"
	"slices"

	"github.com/MKhiriev/go-erp-auth/models"
)

type fileUserRepository struct {
	fileRepository
}

// CreateUser appends user unless the email is taken. The check and the
// insert happen under the store lock.
func (r *fileUserRepository) CreateUser(ctx context.Context, user models.User) error {
	return r.run(ctx, func(s *fileSession) error {
		users, err := s.users.get()
		if err != nil {
			return err
		}

		if slices.ContainsFunc(users, func(u models.User) bool { return u.Email == user.Email }) {
			return ErrUserAlreadyExists
		}

		s.users.set(append(users, user))
		return nil
	})
}

func (r *fileUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.find(ctx, func(u models.User) bool { return u.Email == email })
}

func (r *fileUserRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.find(ctx, func(u models.User) bool { return u.ID == id })
}

func (r *fileUserRepository) find(ctx context.Context, match func(models.User) bool) (models.User, error) {
	var found models.User
	err := r.run(ctx, func(s *fileSession) error {
		users, err := s.users.get()
		if err != nil {
			return err
		}

		idx := slices.IndexFunc(users, match)
		if idx < 0 {
			return ErrUserNotFound
		}
		found = users[idx]
		return nil
	})

	return found, err
}

func (r *fileUserRepository) UpdateUser(ctx context.Context, user models.User) error {
	return r.run(ctx, func(s *fileSession) error {
		users, err := s.users.get()
		if err != nil {
			return err
		}

		idx := slices.IndexFunc(users, func(u models.User) bool { return u.ID == user.ID })
		if idx < 0 {
			return ErrUserNotFound
		}

		updated := users[idx]
		updated.Name = user.Name
		updated.PasswordHash = user.PasswordHash
		updated.Verified = user.Verified
		updated.Role = user.Role
		updated.MustChangePassword = user.MustChangePassword
		users[idx] = updated

		s.users.set(users)
		return nil
	})
}

// DeleteUserByEmail removes the user and applies the same cascade as the SQL
// schema: the user's codes are deleted, audit events and the paired employee
// lose their reference.
func (r *fileUserRepository) DeleteUserByEmail(ctx context.Context, email string) error {
	return r.run(ctx, func(s *fileSession) error {
		users, err := s.users.get()
		if err != nil {
			return err
		}

		idx := slices.IndexFunc(users, func(u models.User) bool { return u.Email == email })
		if idx < 0 {
			return ErrUserNotFound
		}
		userID := users[idx].ID
		s.users.set(slices.Delete(users, idx, idx+1))

		otps, err := s.otps.get()
		if err != nil {
			return err
		}
		s.otps.set(slices.DeleteFunc(otps, func(o models.OTP) bool { return o.UserID == userID }))

		events, err := s.audit.get()
		if err != nil {
			return err
		}
		for i := range events {
			if events[i].UserID != nil && *events[i].UserID == userID {
				events[i].UserID = nil
			}
		}
		s.audit.set(events)

		employees, err := s.employees.get()
		if err != nil {
			return err
		}
		for i := range employees {
			if employees[i].UserID == userID {
				employees[i].UserID = ""
			}
		}
		s.employees.set(employees)

		return nil
	})
}

func (r *fileUserRepository) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := r.run(ctx, func(s *fileSession) error {
		users, err := s.users.get()
		n = len(users)
		return err
	})
	return n, err
}
