package app

import (
	"context"

	"github.com/CrestNiraj12/lemmyterm/domain"
)

// InstanceService lists federated instances to choose from.
type InstanceService interface {
	ListInstances(ctx context.Context) ([]domain.Instance, error)
}
