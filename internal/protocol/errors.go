package protocol

import "errors"

var ErrUnknownMessageType = errors.New("unknown message type")
