package resolver

import (
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/shared/types"
)

// Decide applies the mode precedence rules and reports which input won. A
// persisted value outside the defined modes counts as unset.
func Decide(restrictedHost bool, persisted types.Mode, pullFlag bool) (types.Mode, types.Reason) {
	switch {
	case restrictedHost:
		return types.ModePull, types.ReasonRestrictedHost
	case persisted.Valid() && persisted.IsSet():
		return persisted, types.ReasonPersisted
	case pullFlag:
		return types.ModePull, types.ReasonFeatureFlag
	default:
		return types.ModePush, types.ReasonDefault
	}
}
