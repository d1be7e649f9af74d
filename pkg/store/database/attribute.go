package database

import (
	"context"
	"strings"

	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/db/models"
	"github.com/developmentseed/osm-teams/pkg/proto"
	"github.com/developmentseed/osm-teams/pkg/store"
	"github.com/developmentseed/osm-teams/pkg/utils"
)

var _ store.AttributeStore = (*attributeStore)(nil)

type attributeStore struct{}

// CreateAttribute implements store.AttributeStore.
func (s *attributeStore) CreateAttribute(ctx context.Context, h db.Handler, kind proto.EntityKind, owner int64, a models.AttributeDefinition) (models.AttributeDefinition, error) {
	if err := utils.ValidateName(a.Name); err != nil {
		return models.AttributeDefinition{}, err
	}

	var id int64
	query := h.Rebind(`
		INSERT INTO
		  attribute_definitions (name, value_type, visibility, required, owner_type, owner_id, updated_at)
		VALUES
		  (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		RETURNING id;
	`)
	err := h.GetContext(ctx, &id, query, a.Name, a.ValueType, a.Visibility, a.Required, kind.String(), owner)
	if err != nil {
		return models.AttributeDefinition{}, db.WrapError(err)
	}

	return s.GetAttributeByID(ctx, h, id)
}

// GetAttributeByID implements store.AttributeStore.
func (*attributeStore) GetAttributeByID(ctx context.Context, h db.Handler, id int64) (models.AttributeDefinition, error) {
	var m models.AttributeDefinition
	query := h.Rebind(`SELECT * FROM attribute_definitions WHERE id = ?;`)
	err := h.GetContext(ctx, &m, query, id)
	return m, db.WrapError(err)
}

// UpdateAttribute implements store.AttributeStore.
func (s *attributeStore) UpdateAttribute(ctx context.Context, h db.Handler, id int64, opts store.AttributeUpdate) (models.AttributeDefinition, error) {
	if _, err := s.GetAttributeByID(ctx, h, id); err != nil {
		return models.AttributeDefinition{}, err
	}

	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	args := []interface{}{}
	if opts.Name != nil {
		if err := utils.ValidateName(*opts.Name); err != nil {
			return models.AttributeDefinition{}, err
		}
		sets = append(sets, "name = ?")
		args = append(args, *opts.Name)
	}
	if opts.ValueType != nil {
		sets = append(sets, "value_type = ?")
		args = append(args, *opts.ValueType)
	}
	if opts.Visibility != nil {
		sets = append(sets, "visibility = ?")
		args = append(args, *opts.Visibility)
	}
	if opts.Required != nil {
		sets = append(sets, "required = ?")
		args = append(args, *opts.Required)
	}
	args = append(args, id)

	query := h.Rebind(`UPDATE attribute_definitions SET ` + strings.Join(sets, ", ") + ` WHERE id = ?;`)
	if _, err := h.ExecContext(ctx, query, args...); err != nil {
		return models.AttributeDefinition{}, db.WrapError(err)
	}

	return s.GetAttributeByID(ctx, h, id)
}

// DeleteAttributeByID implements store.AttributeStore.
func (*attributeStore) DeleteAttributeByID(ctx context.Context, h db.Handler, id int64) error {
	query := h.Rebind(`DELETE FROM attribute_definitions WHERE id = ?;`)
	r, err := h.ExecContext(ctx, query, id)
	if err != nil {
		return db.WrapError(err)
	}

	if n, err := r.RowsAffected(); err == nil && n == 0 {
		return db.ErrRecordNotFound
	}

	return nil
}

// ListAttributes implements store.AttributeStore.
func (*attributeStore) ListAttributes(ctx context.Context, h db.Handler, kind proto.EntityKind, owner int64) ([]models.AttributeDefinition, error) {
	var m []models.AttributeDefinition
	query := h.Rebind(`
		SELECT *
		FROM attribute_definitions
		WHERE owner_type = ? AND owner_id = ?
		ORDER BY name;
	`)
	err := h.SelectContext(ctx, &m, query, kind.String(), owner)
	return m, db.WrapError(err)
}

// DeleteAttributesFor implements store.AttributeStore.
func (*attributeStore) DeleteAttributesFor(ctx context.Context, h db.Handler, kind proto.EntityKind, owner int64) error {
	query := h.Rebind(`DELETE FROM attribute_definitions WHERE owner_type = ? AND owner_id = ?;`)
	_, err := h.ExecContext(ctx, query, kind.String(), owner)
	return db.WrapError(err)
}
