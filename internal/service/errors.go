package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidEmailFormat  = errors.New("invalid email format")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrNotEncrypted  = errors.New("note is not encrypted")
	ErrWrongPasscode = errors.New("wrong passcode")

	ErrNotShareable  = errors.New("note is not shareable")
	ErrNotOwner      = errors.New("caller does not own the note")
	ErrShareWithSelf = errors.New("cannot share a note with its owner")

	// ErrPasscodeRequired means access would otherwise be granted, but the
	// note is encrypted and no passcode accompanied the request.
	ErrPasscodeRequired = errors.New("passcode required")

	// ErrAccessDenied covers every no-access outcome that must not disclose
	// whether the note exists: no grant, expired grant, wrong passcode.
	ErrAccessDenied = errors.New("access denied")
)
