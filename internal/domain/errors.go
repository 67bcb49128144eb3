package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest = errors.New("invalid request")

	ErrSession         = errors.New("session error")
	ErrNoActiveSession = fmt.Errorf("%w: no active chat session, generate questions first", ErrSession)

	ErrProvider        = errors.New("provider error")
	ErrAIUnavailable   = fmt.Errorf("%w: AI credentials not configured", ErrProvider)
	ErrProviderTimeout = fmt.Errorf("%w: model call timed out", ErrProvider)
	ErrEmptyReply      = fmt.Errorf("%w: model returned empty text", ErrProvider)

	ErrPersistence = errors.New("persistence error")
	ErrNotFound    = fmt.Errorf("%w: document not found", ErrPersistence)
)
