package game

import "errors"

var (
	ErrRoomExists    = errors.New("room already exists")
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomTooSmall  = errors.New("room is below the minimum size")
	ErrRoomTooLarge  = errors.New("room is above the maximum size")
	ErrRoomFull      = errors.New("room is full")
	ErrUsernameTaken = errors.New("username already taken in this room")
)
