package engine

import "errors"

var (
	ErrIllegalAction    = errors.New("illegal_action")
	ErrNoHand           = errors.New("no_hand_running")
	ErrHandRunning      = errors.New("hand_running")
	ErrNotEnoughPlayers = errors.New("not_enough_players")
	ErrBadSeat          = errors.New("bad_seat")
)
