package experiment

import errorsmod "cosmossdk.io/errors"

const Codespace = "experiment"

var (
	ErrUnknownNumeric    = errorsmod.Register(Codespace, 2, "unknown numeric representation")
	ErrUnknownIntegrator = errorsmod.Register(Codespace, 3, "unknown integrator")
	ErrNotSetup          = errorsmod.Register(Codespace, 4, "experiment not set up")
)
