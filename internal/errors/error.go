package errors

import "errors"

var (
	ErrIllegalSyntax       = errors.New("illegal syntax")
	ErrEngineClosed        = errors.New("engine connection is closed")
	ErrEngineNotConfigured = errors.New("engine path is not configured")
	ErrTranscriptNotFound  = errors.New("transcript was not found")
	ErrInternal            = errors.New("internal error")
)
