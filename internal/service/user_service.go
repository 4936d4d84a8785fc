// Package service содержит бизнес-логику справочника пользователей:
// проверки ролей, валидацию, назначение идентификаторов.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"user-directory-service/internal/model"
	"user-directory-service/internal/repository"
)

var reUserName = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// RecordStore описывает хранилище, которое читает и пишет всю коллекцию целиком.
type RecordStore interface {
	Load(ctx context.Context) (model.Collection, error)
	Save(ctx context.Context, coll model.Collection) error
}

// TransactionManager описывает интерфейс для управления транзакциями (чтобы можно было мокать).
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Options настраивает UserService.
type Options struct {
	// Strict включает проверки ранней версии API: формат и уникальность email,
	// уникальность имени и смену email через PATCH.
	Strict bool
}

// UserService управляет коллекцией пользователей.
// Каждая операция выполняется целиком внутри RunInTransaction: загрузка, изменение, запись.
type UserService struct {
	store     RecordStore
	txManager TransactionManager
	strict    bool
	validate  *validator.Validate
}

// NewUserService создаёт новый сервис для операций над пользователями.
func NewUserService(store RecordStore, txManager TransactionManager, opts Options) *UserService {
	return &UserService{
		store:     store,
		txManager: txManager,
		strict:    opts.Strict,
		validate:  validator.New(),
	}
}

// ListUsers возвращает всех пользователей в порядке хранения. Только для ADMIN.
func (s *UserService) ListUsers(ctx context.Context, principal model.Principal) ([]model.User, error) {
	if err := requireRole(principal, model.RoleAdmin); err != nil {
		return nil, err
	}

	var users []model.User
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		coll, err := s.store.Load(ctx)
		if err != nil {
			return err
		}
		users = coll.Users
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err, "failed to list users")
	}
	if users == nil {
		users = make([]model.User, 0)
	}
	return users, nil
}

// GetUser возвращает пользователя по id. Обычный пользователь видит только себя;
// чужая запись для него выглядит как несуществующая.
func (s *UserService) GetUser(ctx context.Context, principal model.Principal, id string) (model.User, error) {
	if err := requireRole(principal, model.RoleUser); err != nil {
		return model.User{}, err
	}
	if principal.ID != id && !principal.HasRole(model.RoleAdmin) {
		return model.User{}, userNotFound(id)
	}

	var user model.User
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		coll, err := s.store.Load(ctx)
		if err != nil {
			return err
		}
		idx := coll.IndexOf(id)
		if idx < 0 {
			return userNotFound(id)
		}
		user = coll.Users[idx]
		return nil
	})
	if err != nil {
		return model.User{}, mapStoreError(err, "failed to get user")
	}
	return user, nil
}

// CreateUser создаёт пользователя и назначает ему следующий id. Только для ADMIN.
// Проверки идут по порядку, первая не прошедшая возвращается клиенту.
func (s *UserService) CreateUser(ctx context.Context, principal model.Principal, in model.CreateUserInput) (model.UserChange, error) {
	if err := requireRole(principal, model.RoleAdmin); err != nil {
		return model.UserChange{}, err
	}

	if in.DecodeErr != nil {
		return model.UserChange{}, ErrInvalidJSON(in.DecodeErr)
	}

	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)

	if email == "" || name == "" {
		return model.UserChange{}, ErrUnprocessable("Missing required parameter 'email' or 'name'")
	}
	if !reUserName.MatchString(name) {
		return model.UserChange{}, ErrUnprocessable("Username is not valid")
	}
	if s.strict {
		if err := s.checkEmail(email); err != nil {
			return model.UserChange{}, err
		}
	}

	var created model.User
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		coll, err := s.store.Load(ctx)
		if err != nil {
			return err
		}

		if s.strict {
			if err := checkUnique(coll, "", email, name); err != nil {
				return err
			}
		}

		coll.LastID++
		created = model.User{
			ID:    strconv.FormatInt(coll.LastID, 10),
			Email: email,
			Name:  name,
		}
		coll.Users = append(coll.Users, created)

		return s.store.Save(ctx, coll)
	})
	if err != nil {
		return model.UserChange{}, mapStoreError(err, "failed to create user")
	}

	return model.UserChange{
		Message: "User created successfully",
		User:    created,
	}, nil
}

// DeleteUser удаляет пользователя, сохраняя порядок остальных записей. Только для ADMIN.
func (s *UserService) DeleteUser(ctx context.Context, principal model.Principal, id string) (string, error) {
	if err := requireRole(principal, model.RoleAdmin); err != nil {
		return "", err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		coll, err := s.store.Load(ctx)
		if err != nil {
			return err
		}
		idx := coll.IndexOf(id)
		if idx < 0 {
			return userNotFound(id)
		}
		coll.Users = slices.Delete(coll.Users, idx, idx+1)

		return s.store.Save(ctx, coll)
	})
	if err != nil {
		return "", mapStoreError(err, "failed to delete user")
	}

	return fmt.Sprintf("User with id %s has been deleted.", id), nil
}

// UpdateUser меняет имя пользователя. В строгом режиме можно сменить и email,
// а каждое из полей необязательно.
func (s *UserService) UpdateUser(ctx context.Context, principal model.Principal, id string, in model.UpdateUserInput) (model.UserChange, error) {
	if err := requireRole(principal, model.RoleUser); err != nil {
		return model.UserChange{}, err
	}

	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)

	var updated model.User
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		coll, err := s.store.Load(ctx)
		if err != nil {
			return err
		}
		idx := coll.IndexOf(id)
		if idx < 0 {
			return userNotFound(id)
		}
		if in.DecodeErr != nil {
			return ErrInvalidJSON(in.DecodeErr)
		}

		user := coll.Users[idx]
		if s.strict {
			user, err = s.applyStrictUpdate(coll, user, email, name)
			if err != nil {
				return err
			}
		} else {
			if !reUserName.MatchString(name) {
				return ErrUnprocessable("Username is not valid")
			}
			user.Name = name
		}

		coll.Users[idx] = user
		updated = user

		return s.store.Save(ctx, coll)
	})
	if err != nil {
		return model.UserChange{}, mapStoreError(err, "failed to update user")
	}

	return model.UserChange{
		Message: fmt.Sprintf("User with id %s has been updated.", id),
		User:    updated,
	}, nil
}

func (s *UserService) applyStrictUpdate(coll model.Collection, user model.User, email, name string) (model.User, error) {
	if email != "" {
		if err := s.checkEmail(email); err != nil {
			return model.User{}, err
		}
		if err := checkUnique(coll, user.ID, email, ""); err != nil {
			return model.User{}, err
		}
		user.Email = email
	}

	if name != "" {
		if !reUserName.MatchString(name) {
			return model.User{}, ErrUnprocessable("Username is not valid")
		}
		if err := checkUnique(coll, user.ID, "", name); err != nil {
			return model.User{}, err
		}
		user.Name = name
	}

	return user, nil
}

func (s *UserService) checkEmail(email string) error {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return ErrBadRequest("Invalid email format.")
	}
	return nil
}

// checkUnique ищет другую запись (не exceptID) с тем же email или именем.
// Пустые email/name не проверяются.
func checkUnique(coll model.Collection, exceptID, email, name string) error {
	for _, u := range coll.Users {
		if u.ID == exceptID {
			continue
		}
		if email != "" && u.Email == email {
			return ErrConflict(fmt.Sprintf("User with email '%s' already exists.", email))
		}
		if name != "" && u.Name == name {
			return ErrConflict(fmt.Sprintf("User with name '%s' already exists.", name))
		}
	}
	return nil
}

func requireRole(principal model.Principal, role string) error {
	if principal.Anonymous() {
		return ErrUnauthorized("authentication required")
	}
	if !principal.HasRole(role) {
		return ErrForbidden("access denied")
	}
	return nil
}

func userNotFound(id string) *AppError {
	return ErrNotFound(fmt.Sprintf("User with id %s not found.", id))
}

// mapStoreError пропускает AppError как есть, остальное переводит в ошибки хранилища.
func mapStoreError(err error, msg string) error {
	var app *AppError
	if errors.As(err, &app) {
		return app
	}
	if errors.Is(err, repository.ErrStorageCorrupt) {
		return ErrStorageCorrupt(err)
	}
	return ErrInternal(msg, err)
}
