package grants

import (
	"context"
	"errors"
	"strings"

	"pawsense/internal/ports/capabilities"
)

// Resolver implementa capabilities.CapabilitiesResolver contra el servicio de grants.
type Resolver struct {
	client   *Client
	allowAll bool
}

// NewResolver: con allowAll todo se concede sin llamar upstream (modo dev).
func NewResolver(client *Client, allowAll bool) *Resolver {
	return &Resolver{client: client, allowAll: allowAll}
}

func (r *Resolver) HasFeature(ctx context.Context, in capabilities.CapabilityCheck) (bool, error) {
	capability := strings.TrimSpace(in.Capability)
	if capability == "" {
		return false, errors.New("capability required")
	}
	if r.allowAll {
		return true, nil
	}
	// sin cliente no concedemos nada
	if r.client == nil || !r.client.IsConfigured() {
		return false, ErrNotConfigured
	}

	resp, err := r.client.GetGrants(ctx, in.UserID)
	if err != nil {
		return false, err
	}
	return resp.Grants[capability], nil
}
