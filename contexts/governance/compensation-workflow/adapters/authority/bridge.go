package authority

import (
	"context"

	coordqueries "warden/contexts/access-control/access-coordinator/application/queries"
)

// Bridge adapts the coordinator's decision point to the workflow's authority port.
type Bridge struct {
	CheckAuthority coordqueries.CheckAuthorityUseCase
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
