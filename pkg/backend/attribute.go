package backend

import (
	"context"

	"github.com/developmentseed/osm-teams/pkg/access"
	"github.com/developmentseed/osm-teams/pkg/db/models"
	"github.com/developmentseed/osm-teams/pkg/proto"
	"github.com/developmentseed/osm-teams/pkg/store"
)

func (b *Backend) authorizeOwner(ctx context.Context, kind proto.EntityKind, owner int64, action access.Action) error {
	switch kind {
	case proto.KindTeam:
		return b.AuthorizeTeam(ctx, owner, action)
	case proto.KindOrg:
		return b.AuthorizeOrg(ctx, owner, action)
	default:
		return proto.ErrInvalidInput
	}
}

// CreateAttribute defines a new profile attribute on a team or an
// organization. Attribute names are unique per entity.
func (b *Backend) CreateAttribute(ctx context.Context, kind proto.EntityKind, owner int64, a models.AttributeDefinition) (models.AttributeDefinition, error) {
	if err := b.authorizeOwner(ctx, kind, owner, access.Update); err != nil {
		return models.AttributeDefinition{}, err
	}

	m, err := b.store.CreateAttribute(ctx, b.db, kind, owner, a)
	if err != nil {
		return models.AttributeDefinition{}, wrapAttributeErr(err)
	}
	return m, nil
}

// UpdateAttribute applies a partial update to an attribute definition.
func (b *Backend) UpdateAttribute(ctx context.Context, id int64, opts store.AttributeUpdate) (models.AttributeDefinition, error) {
	a, err := b.store.GetAttributeByID(ctx, b.db, id)
	if err != nil {
		return models.AttributeDefinition{}, wrapAttributeErr(err)
	}
	if err := b.authorizeOwner(ctx, proto.ParseEntityKind(a.OwnerType), a.OwnerID, access.Update); err != nil {
		return models.AttributeDefinition{}, err
	}

	m, err := b.store.UpdateAttribute(ctx, b.db, id, opts)
	if err != nil {
		return models.AttributeDefinition{}, wrapAttributeErr(err)
	}
	return m, nil
}

// DeleteAttribute removes an attribute definition.
func (b *Backend) DeleteAttribute(ctx context.Context, id int64) error {
	a, err := b.store.GetAttributeByID(ctx, b.db, id)
	if err != nil {
		return wrapAttributeErr(err)
	}
	if err := b.authorizeOwner(ctx, proto.ParseEntityKind(a.OwnerType), a.OwnerID, access.Update); err != nil {
		return err
	}

	return wrapAttributeErr(b.store.DeleteAttributeByID(ctx, b.db, id))
}

// ListAttributes returns the attribute definitions scoped to an entity.
func (b *Backend) ListAttributes(ctx context.Context, kind proto.EntityKind, owner int64) ([]models.AttributeDefinition, error) {
	if err := b.authorizeOwner(ctx, kind, owner, access.View); err != nil {
		return nil, err
	}
	return b.store.ListAttributes(ctx, b.db, kind, owner)
}
