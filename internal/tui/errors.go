// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/nJurisch/equipment-pool/internal/store"
)

// humanizeError renders err for the status line. Service errors already
// read well; only lock contention gets a hint.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, store.ErrStoreBusy) {
		return "The pool file is locked by another program, try again: " + err.Error()
	}

	return err.Error()
}
