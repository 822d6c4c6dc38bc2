package system

import errorsmod "cosmossdk.io/errors"

const Codespace = "system"

var (
	ErrInvalidDefinition = errorsmod.Register(Codespace, 2, "invalid system definition")
	ErrUnsupportedFormat = errorsmod.Register(Codespace, 3, "unsupported system definition format")
	ErrUnknownPreset     = errorsmod.Register(Codespace, 4, "unknown preset")
)
