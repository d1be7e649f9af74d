package store

import (
	"context"

	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/db/models"
	"github.com/developmentseed/osm-teams/pkg/proto"
)

// AttributeUpdate holds the recognized fields of a partial attribute update.
type AttributeUpdate struct {
	Name       *string
	ValueType  *string
	Visibility *string
	Required   *bool
}

// AttributeStore is a store for profile attribute definitions.
type AttributeStore interface {
	CreateAttribute(ctx context.Context, h db.Handler, kind proto.EntityKind, owner int64, a models.AttributeDefinition) (models.AttributeDefinition, error)
	GetAttributeByID(ctx context.Context, h db.Handler, id int64) (models.AttributeDefinition, error)
	UpdateAttribute(ctx context.Context, h db.Handler, id int64, opts AttributeUpdate) (models.AttributeDefinition, error)
	DeleteAttributeByID(ctx context.Context, h db.Handler, id int64) error
	ListAttributes(ctx context.Context, h db.Handler, kind proto.EntityKind, owner int64) ([]models.AttributeDefinition, error)
	// DeleteAttributesFor removes every definition scoped to the entity.
	// Used by the destroy cascades.
	DeleteAttributesFor(ctx context.Context, h db.Handler, kind proto.EntityKind, owner int64) error
}
