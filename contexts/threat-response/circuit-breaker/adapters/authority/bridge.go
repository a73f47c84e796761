package authority

import (
	"context"

	coordcommands "warden/contexts/access-control/access-coordinator/application/commands"
	coordqueries "warden/contexts/access-control/access-coordinator/application/queries"
)

// ServiceActor is the identity the breaker escalates under. Runtime wiring
// seeds it with the sentinel tag so the machine path clears the gate.
const ServiceActor = "svc-circuit-breaker"

// Bridge adapts the coordinator's decision point to the breaker's narrow
// authority and escalator ports.
type Bridge struct {
	CheckAuthority coordqueries.CheckAuthorityUseCase
	EmergencyPause coordcommands.TriggerEmergencyPauseUseCase
}

func (b Bridge) IsOperationAllowed(ctx context.Context, actor string, role string) (bool, error) {
	decision, err := b.CheckAuthority.Execute(ctx, coordqueries.CheckAuthorityQuery{
		Actor: actor,
		Role:  role,
	})
	if err != nil {
		return false, err
	}
	return decision.Allowed, nil
}

func (b Bridge) TriggerEmergencyPause(ctx context.Context, reason string) error {
	return b.EmergencyPause.Execute(ctx, coordcommands.TriggerEmergencyPauseCommand{
		Actor:  ServiceActor,
		Reason: reason,
	})
}
