package errors

import "fmt"

var (
	ErrEmptyMessage       = fmt.Errorf("message is empty")
	ErrMessageTooLong     = fmt.Errorf("message exceeds the maximum length")
	ErrSendInFlight       = fmt.Errorf("a send is already in progress")
	ErrUnknownMessage     = fmt.Errorf("unknown message id")
	ErrNoIdentity         = fmt.Errorf("record has no extractable identity")
	ErrNotSignedIn        = fmt.Errorf("no active session")
	ErrInvalidDisplayName = fmt.Errorf("invalid display name")
)
