// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/ballotbox/models"
)

// ElectionOpen reports whether votes are currently accepted
func ElectionOpen(db *sql.DB) (bool, error) {
	var state models.ElectionState
	err := db.QueryRow(`SELECT id, is_open FROM election_state WHERE id = 1`).Scan(&state.ID, &state.IsOpen)
	if err != nil {
		return false, fmt.Errorf("failed to read election state: %w", err)
	}
	return state.IsOpen, nil
}

// ToggleElection flips the open/closed flag and returns the new state.
// The flip and the read-back are one statement, so concurrent toggles
// and in-flight vote transactions see either the old or the new value,
// never a torn state.
func ToggleElection(db *sql.DB) (bool, error) {
	var isOpen bool
	err := db.QueryRow(`
		UPDATE election_state SET is_open = NOT is_open WHERE id = 1
		RETURNING is_open
	`).Scan(&isOpen)
	if err != nil {
		return false, fmt.Errorf("failed to toggle election state: %w", err)
	}
	return isOpen, nil
}
