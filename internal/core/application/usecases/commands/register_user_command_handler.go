package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

// RegisterUserCommandHandler handles the business logic for user registration.
// Hashes the password with bcrypt and enforces username uniqueness.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewRegisterUserCommandHandler creates a handler for user registration operations.
func NewRegisterUserCommandHandler(uowFactory UserUoWFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command.
// Returns errs.AlreadyExistsError if the username is taken.
func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password()), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()

	_, err = userRepo.GetByUsername(ctx, cmd.Username())
	if err == nil {
		return errs.NewAlreadyExistsError("username", cmd.Username())
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	aggregate, err := user.NewUser(cmd.UserID(), cmd.Username(), cmd.Email(), cmd.Role(), string(hash))
	if err != nil {
		return err
	}

	if err = userRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
