// Package errors provides structured error handling with machine-readable codes.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Snapshot errors
	CodeSnapshotSessionRequired Code = "SNAPSHOT_SESSION_REQUIRED"
	CodeSnapshotInvalidGameType Code = "SNAPSHOT_INVALID_GAME_TYPE"
	CodeSnapshotDecodeFailed    Code = "SNAPSHOT_DECODE_FAILED"

	// Result errors
	CodeResultRoundIDRequired       Code = "RESULT_ROUND_ID_REQUIRED"
	CodeResultParticipantIDRequired Code = "RESULT_PARTICIPANT_ID_REQUIRED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)
