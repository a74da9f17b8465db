package lemmy

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/CrestNiraj12/lemmyterm/domain"
)

// BootstrapInstance is asked for the list of federated instances.
const BootstrapInstance = "https://lemmy.ml"

// instanceService implements app.InstanceService using a bootstrap instance's federation list.
type instanceService struct {
	client    *Client
	bootstrap string
}

// NewInstanceService creates an InstanceService. An empty bootstrap uses BootstrapInstance.
func NewInstanceService(client *Client, bootstrap string) *instanceService {
	if bootstrap == "" {
		bootstrap = BootstrapInstance
	}
	return &instanceService{client: client, bootstrap: bootstrap}
}

func (s *instanceService) ListInstances(ctx context.Context) ([]domain.Instance, error) {
	var resp struct {
		FederatedInstances *struct {
			Linked []struct {
				ID       int    `json:"id"`
				Domain   string `json:"domain"`
				Software string `json:"software"`
			} `json:"linked"`
		} `json:"federated_instances"`
	}
	sess := domain.Session{InstanceURL: s.bootstrap}
	if err := s.client.Get(ctx, sess, "/federated_instances", nil, &resp); err != nil {
		return nil, fmt.Errorf("listing instances: %w", err)
	}
	if resp.FederatedInstances == nil {
		return nil, nil
	}

	out := make([]domain.Instance, 0, len(resp.FederatedInstances.Linked))
	for _, inst := range resp.FederatedInstances.Linked {
		if !strings.EqualFold(inst.Software, "lemmy") || inst.Domain == "" {
			continue
		}
		out = append(out, domain.Instance{ID: inst.ID, Domain: inst.Domain, Software: inst.Software})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Domain < out[j].Domain })
	return out, nil
}
