package service

import (
	"context"
	"errors"
	"strings"

	"github.com/nJurisch/equipment-pool/internal/logger"
	"github.com/nJurisch/equipment-pool/internal/store"
	"github.com/nJurisch/equipment-pool/internal/utils"
	"github.com/nJurisch/equipment-pool/internal/validators"
	"github.com/nJurisch/equipment-pool/models"
)

type userService struct {
	userRepository store.UserRepository
	validator      validators.Validator
	clock          utils.Clock

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, validator validators.Validator, clock utils.Clock, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		validator:      validator,
		clock:          clock,
		logger:         logger,
	}
}

// Create registers a new user. The id is the user's e-mail address by
// convention and must not be taken yet.
func (s *userService) Create(ctx context.Context, id, name string) (models.User, error) {
	log := logger.FromContext(ctx)

	user := models.User{
		ID:        strings.TrimSpace(id),
		Name:      strings.TrimSpace(name),
		CreatedAt: s.clock.Now(),
	}
	if err := s.validator.Validate(ctx, user); err != nil {
		return models.User{}, validationError(err)
	}

	_, err := s.userRepository.GetByID(ctx, user.ID)
	switch {
	case err == nil:
		return models.User{}, validationError(ErrUserAlreadyExists)
	case !errors.Is(err, store.ErrUserNotFound):
		log.Err(err).Str("func", "*userService.Create").Str("user_id", user.ID).Msg("error looking up user")
		return models.User{}, mapStoreError(err)
	}

	created, err := s.userRepository.Insert(ctx, user)
	if errors.Is(err, store.ErrUniqueViolation) {
		return models.User{}, validationError(ErrUserAlreadyExists)
	}
	if err != nil {
		log.Err(err).Str("func", "*userService.Create").Str("user_id", user.ID).Msg("error creating user")
		return models.User{}, mapStoreError(err)
	}

	log.Info().Str("func", "*userService.Create").Str("user_id", created.ID).Msg("user created")
	return created, nil
}

func (s *userService) ListAll(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.FindAll(ctx)
	return users, mapStoreError(err)
}

func (s *userService) Get(ctx context.Context, id string) (models.User, error) {
	user, err := s.userRepository.GetByID(ctx, strings.TrimSpace(id))
	return user, mapStoreError(err)
}

// Delete removes the user. Devices the user is responsible for and
// reservations made by the user keep the now dangling reference.
func (s *userService) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if err := s.userRepository.RemoveByID(ctx, strings.TrimSpace(id)); err != nil {
		return mapStoreError(err)
	}

	log.Info().Str("func", "*userService.Delete").Str("user_id", id).Msg("user deleted")
	return nil
}
