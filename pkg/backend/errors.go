package backend

import (
	"errors"

	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/proto"
)

func wrapTeamErr(err error) error {
	if errors.Is(err, db.ErrRecordNotFound) {
		return proto.ErrTeamNotFound
	}
	return err
}

func wrapOrgErr(err error) error {
	if errors.Is(err, db.ErrRecordNotFound) {
		return proto.ErrOrgNotFound
	}
	return err
}

func wrapAttributeErr(err error) error {
	if errors.Is(err, db.ErrRecordNotFound) {
		return proto.ErrAttributeNotFound
	}
	if errors.Is(err, db.ErrDuplicateKey) {
		return proto.ErrDuplicateAttribute
	}
	return err
}

func wrapInviteErr(err error) error {
	if errors.Is(err, db.ErrRecordNotFound) {
		return proto.ErrInviteNotFound
	}
	return err
}
