// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/nJurisch/equipment-pool/internal/maintenance"
	"github.com/nJurisch/equipment-pool/internal/store"
	"github.com/nJurisch/equipment-pool/internal/validators"
)

// mapStoreError translates store and validator errors into the service
// error taxonomy. Errors already carrying a kind pass through unchanged.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound), errors.Is(err, ErrAmbiguousMatch):
		return err

	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrDeviceNotFound),
		errors.Is(err, store.ErrReservationNotFound):
		return notFoundError(err)

	case errors.Is(err, store.ErrUniqueViolation):
		return validationError(err)

	case errors.Is(err, maintenance.ErrNonPositiveInterval),
		errors.Is(err, maintenance.ErrZeroDate),
		errors.Is(err, maintenance.ErrScheduleTooLong):
		return validationError(err)

	case isValidatorError(err):
		return validationError(err)
	}

	return err
}

var validatorErrors = []error{
	validators.ErrEmptyUserID,
	validators.ErrEmptyName,
	validators.ErrEmptyDeviceName,
	validators.ErrEmptyResponsibleUser,
	validators.ErrInvalidInterval,
	validators.ErrMissingDate,
	validators.ErrFirstAfterEndOfLife,
	validators.ErrScheduleTooLong,
	validators.ErrInvalidCost,
	validators.ErrEmptyDeviceID,
	validators.ErrEmptyReserver,
	validators.ErrReservedReserverName,
	validators.ErrEndBeforeStart,
	validators.ErrEmptyReservationRange,
}

func isValidatorError(err error) bool {
	for _, target := range validatorErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
