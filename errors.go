package main

import "errors"

// Validation errors are local and non-fatal: the action is rejected, session
// state is left untouched, and the message is reported back to the caller.
var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomCodeTaken      = errors.New("room code already in use")
	ErrInvalidRoomCode    = errors.New("room code must be 6 letters or digits")
	ErrUnknownPlayer      = errors.New("unknown player")
	ErrDeadPlayerTargeted = errors.New("action involves a dead player")
	ErrWrongRoleForAction = errors.New("player's role cannot perform this action")
	ErrInvalidPhaseAction = errors.New("action not allowed in the current phase")
	ErrPotionAlreadyUsed  = errors.New("potion already used this game")
	ErrUnknownAction      = errors.New("unknown action kind")
	ErrNotEnoughPlayers   = errors.New("at least 5 players are required")
	ErrInvalidPlayerName  = errors.New("player name must be non-empty and unique in the room")

	// Witch edge cases carried over from the night rules: the heal potion only
	// works on someone marked to die tonight, and the poison cannot double up
	// on a player who is already dying.
	ErrNoRescueTarget     = errors.New("heal target is not marked for death tonight")
	ErrTargetAlreadyDying = errors.New("poison target is already marked for death")

	// ErrSessionCorrupted is the only fatal condition: an invariant check
	// failed after a mutation. The session is frozen until an admin reset.
	ErrSessionCorrupted = errors.New("session state is corrupted, admin reset required")

	// ErrPersistenceUnavailable is surfaced as a durability warning once save
	// retries are exhausted; the in-memory state stays authoritative.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)
