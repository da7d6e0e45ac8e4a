package commands

import (
	"context"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"
	"wheelshare/internal/infra"
	"wheelshare/internal/pkg/clock"
	"wheelshare/internal/pkg/errs"
	"wheelshare/internal/usecase/queries"
	"wheelshare/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=resource.go -destination=../../../tests/mock/commands/mock_resource.go -package=commandsmock

type CreateResourceInput struct {
	Kind           string
	Name           string
	Description    string
	Location       string
	UnitPriceCents int64
}

type ResourceCommands interface {
	CreateResource(ctx context.Context, actor reservation.Actor, in CreateResourceInput) (*queries.ResourceView, error)
	UpdateResource(ctx context.Context, actor reservation.Actor, id uuid.UUID, changes resource.Changes) (*queries.ResourceView, error)
}

type resourceCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.ResourceReadStore
	clock     clock.Clock
}

func NewResourceCommands(uow shared.UnitOfWork, readStore queries.ResourceReadStore, clock clock.Clock) ResourceCommands {
	return &resourceCommandsImpl{
		uow:       uow,
		readStore: readStore,
		clock:     clock,
	}
}

func (c *resourceCommandsImpl) CreateResource(
	ctx context.Context,
	actor reservation.Actor,
	in CreateResourceInput,
) (*queries.ResourceView, error) {
	kind, err := resource.ParseKind(in.Kind)
	if err != nil {
		return nil, err
	}

	res, err := resource.NewResource(actor.ID, actor.Role, resource.Listing{
		Kind:           kind,
		Name:           in.Name,
		Description:    in.Description,
		Location:       in.Location,
		UnitPriceCents: in.UnitPriceCents,
	}, c.clock.Now())
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Resources().Create(ctx, res)
	})
	if err != nil {
		return nil, errs.Wrap(err, "create resource")
	}

	return c.readBack(ctx, res.ID())
}

func (c *resourceCommandsImpl) UpdateResource(
	ctx context.Context,
	actor reservation.Actor,
	id uuid.UUID,
	changes resource.Changes,
) (*queries.ResourceView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Resources().FindByIDForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return resource.ErrResourceNotFound
			}
			return err
		}

		if err := res.Apply(actor.ID, actor.Role, changes, c.clock.Now()); err != nil {
			return err
		}
		return tx.Resources().Update(ctx, res)
	})
	if err != nil {
		return nil, errs.Wrap(err, "update resource")
	}

	return c.readBack(ctx, id)
}

func (c *resourceCommandsImpl) readBack(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	view, err := c.readStore.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Wrap(err, "read resource after write")
	}
	return view, nil
}
