// Package catalog holds the endpoint registry: the fixed set of operations
// the console can exercise. The built-in catalog mirrors the EnformionGO
// wrapper; a YAML overlay and an OpenAPI import can extend or replace it.
package catalog

import (
	"fmt"

	"galcon/internal/model"
	"galcon/internal/pathmap"
)

// Registry is an ordered, id-addressable set of endpoint descriptors.
type Registry struct {
	endpoints []model.EndpointDescriptor
	byID      map[string]int
}

// New builds a registry, rejecting duplicate or invalid descriptors.
func New(endpoints ...model.EndpointDescriptor) (*Registry, error) {
	r := &Registry{byID: map[string]int{}}
	for _, ep := range endpoints {
		if err := r.add(ep); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) add(ep model.EndpointDescriptor) error {
	if err := validate(ep); err != nil {
		return err
	}
	if i, dup := r.byID[ep.ID]; dup {
		r.endpoints[i] = ep
		return nil
	}
	r.byID[ep.ID] = len(r.endpoints)
	r.endpoints = append(r.endpoints, ep)
	return nil
}

func validate(ep model.EndpointDescriptor) error {
	if ep.ID == "" {
		return fmt.Errorf("endpoint with empty id")
	}
	if ep.Path == "" {
		return fmt.Errorf("endpoint %q: empty path", ep.ID)
	}
	for _, f := range ep.Fields {
		if _, err := pathmap.Parse(f.Key); err != nil {
			return fmt.Errorf("endpoint %q: %w", ep.ID, err)
		}
		switch f.Type {
		case model.TypeText, model.TypeNumber:
		default:
			return fmt.Errorf("endpoint %q field %q: unknown value type %q", ep.ID, f.Key, f.Type)
		}
	}
	return nil
}

// All returns the descriptors in catalog order.
func (r *Registry) All() []model.EndpointDescriptor {
	return r.endpoints
}

// Get looks a descriptor up by id.
func (r *Registry) Get(id string) (model.EndpointDescriptor, bool) {
	i, ok := r.byID[id]
	if !ok {
		return model.EndpointDescriptor{}, false
	}
	return r.endpoints[i], true
}

// Merge adds descriptors, replacing any existing entry with the same id.
func (r *Registry) Merge(endpoints []model.EndpointDescriptor) error {
	for _, ep := range endpoints {
		if err := r.add(ep); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) Len() int { return len(r.endpoints) }
