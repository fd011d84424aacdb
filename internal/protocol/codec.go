package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Decode parses a client frame into its concrete message type and
// validates its fields.
func Decode(raw []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	var msg any
	switch env.Type {
	case TypeJoinRoomHandshake:
		msg = &JoinRoomHandshake{}
	case TypeDrawData:
		msg = &DrawData{}
	case TypeDrawAction:
		msg = &DrawAction{}
	case TypeChosenWord:
		msg = &ChosenWord{}
	case TypeChatMessage:
		msg = &ChatMessage{}
	case TypePing:
		msg = &Ping{}
	case TypeDisconnectRequest:
		msg = &DisconnectRequest{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, env.Type)
	}

	if err := json.Unmarshal(raw, msg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", env.Type, err)
	}
	if err := validate.Struct(msg); err != nil {
		return nil, fmt.Errorf("validate %s: %w", env.Type, err)
	}
	return msg, nil
}

// Encode serializes an outbound message.
func Encode(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", msg, err)
	}
	return data, nil
}
