package dynamo

import errorsmod "cosmossdk.io/errors"

// Codespace for kernel errors.
const Codespace = "nbody"

// Contract violations and construction errors of the simulation kernel.
var (
	// ErrIndexOutOfRange indicates a body index outside [0, N).
	ErrIndexOutOfRange = errorsmod.Register(Codespace, 2, "body index out of range")

	// ErrBodyCountMismatch indicates two states or sequences with different N.
	ErrBodyCountMismatch = errorsmod.Register(Codespace, 3, "body count mismatch")

	// ErrStateSealed indicates an append to a state already owned by a running system.
	ErrStateSealed = errorsmod.Register(Codespace, 4, "state is sealed, no further bodies may be added")

	// ErrInvalidState indicates a missing state or one holding NaN/Inf.
	ErrInvalidState = errorsmod.Register(Codespace, 5, "invalid state")

	// ErrInvalidCycles indicates a history capacity below one.
	ErrInvalidCycles = errorsmod.Register(Codespace, 6, "history capacity must be at least 1")

	// ErrInvalidSoftening indicates a softening constant that is not strictly positive.
	ErrInvalidSoftening = errorsmod.Register(Codespace, 7, "softening constant must be positive")
)
