package nbody

import "errors"

var (
	ErrIndexOutOfRange     = errors.New("nbody: particle index out of range")
	ErrUnknownStrategy     = errors.New("nbody: unknown strategy")
	ErrPairRequiresTwo     = errors.New("nbody: pair strategy needs exactly two particles")
	ErrTreeRequiresGravity = errors.New("nbody: tree strategy needs a gravitational law")
)
