package bridge

import "errors"

// Domain errors for the bridge package.
var (
	// ErrBadTopic is returned for a message on a topic the bridge cannot parse.
	ErrBadTopic = errors.New("bridge: unrecognised topic")

	// ErrBadPayload is returned for a message body that is not valid.
	ErrBadPayload = errors.New("bridge: invalid payload")
)
