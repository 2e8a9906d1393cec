package match

import "errors"

var (
	ErrSchedulerExhausted = errors.New("scheduler_exhausted")
	ErrSessionNotFound    = errors.New("session_not_found")
	ErrSessionFinished    = errors.New("session_finished")
	ErrNotPaused          = errors.New("session_not_paused")
	ErrOutOfTurn          = errors.New("out_of_turn")
	ErrBadSeatCount       = errors.New("bad_seat_count")
)
