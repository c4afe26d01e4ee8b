package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"redheart/internal/backend"
	"redheart/internal/domain"
	"redheart/internal/events"
	"redheart/internal/validate"
)

const (
	MsgAddOnsLoadFailed  = "Failed to load add-ons"
	MsgAddOnSaveFailed   = "Failed to save add-on"
	MsgAddOnDeleteFailed = "Failed to delete add-on"
	MsgAddOnNotFound     = "Add-on not found"
	MsgAddOnBadPrice     = "Prices must be numbers."
	MsgAddOnDeleted      = "Add-on is already deleted"
)

var (
	ErrAddOnNotFound = &validate.Problem{Msg: MsgAddOnNotFound}
	ErrAddOnDeleted  = &validate.Problem{Msg: MsgAddOnDeleted}
)

type AddOnBackend interface {
	ListAddOns(ctx context.Context) ([]domain.AddOn, error)
	AddOnsByCategory(ctx context.Context, category string) ([]domain.AddOn, error)
	CreateAddOn(ctx context.Context, in backend.AddOnPayload) error
	EditAddOn(ctx context.Context, id string, in backend.AddOnPayload) error
	SoftDeleteAddOn(ctx context.Context, id string) error
}

type AddOnService struct {
	API    AddOnBackend
	Form   *Busy
	Delete *BusyID
	Events events.Publisher
}

func NewAddOnService(api AddOnBackend, pub events.Publisher) *AddOnService {
	return &AddOnService{API: api, Form: &Busy{}, Delete: NewBusyID(PolicyBlock), Events: pub}
}

// List filters by category; a blank filter lists everything.
func (s *AddOnService) List(ctx context.Context, category string) ([]domain.AddOn, error) {
	if c := strings.TrimSpace(category); c != "" {
		return s.API.AddOnsByCategory(ctx, c)
	}
	return s.API.ListAddOns(ctx)
}

// Find looks an add-on up in the full list; the backend has no single-item endpoint.
func (s *AddOnService) Find(ctx context.Context, id string) (domain.AddOn, error) {
	all, err := s.API.ListAddOns(ctx)
	if err != nil {
		return domain.AddOn{}, err
	}
	for _, a := range all {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.AddOn{}, ErrAddOnNotFound
}

// Save creates when id is empty and edits otherwise.
func (s *AddOnService) Save(ctx context.Context, actor, id string, f domain.AddOnForm) error {
	in, err := payload(f)
	if err != nil {
		return err
	}
	release, err := s.Form.Acquire()
	if err != nil {
		return err
	}
	defer release()

	action := events.AddOnCreated
	if id == "" {
		err = s.API.CreateAddOn(ctx, in)
	} else {
		action = events.AddOnEdited
		err = s.API.EditAddOn(ctx, id, in)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	rid := id
	if rid == "" {
		rid = in.Name
	}
	publish(ctx, s.Events, events.New(action, "addon", rid, actor, map[string]any{
		"name":     in.Name,
		"category": in.Category,
	}))
	return nil
}

// SoftDelete flags one add-on as deleted; a row already flagged is refused.
func (s *AddOnService) SoftDelete(ctx context.Context, actor, id string) error {
	release, err := s.Delete.Acquire(id)
	if err != nil {
		return err
	}
	defer release()

	a, err := s.Find(ctx, id)
	if err != nil {
		return err
	}
	if !a.CanDelete() {
		return ErrAddOnDeleted
	}
	if err := s.API.SoftDeleteAddOn(ctx, id); err != nil {
		return fmt.Errorf("soft delete add-on %s: %w", id, err)
	}
	publish(ctx, s.Events, events.New(events.AddOnSoftDeleted, "addon", id, actor, nil))
	return nil
}

func payload(f domain.AddOnForm) (backend.AddOnPayload, error) {
	p := backend.AddOnPayload{
		Image:    strings.TrimSpace(f.Image),
		Category: strings.TrimSpace(f.Category),
		Name:     strings.TrimSpace(f.Name),
		AddOn:    f.AddOn,
	}
	for _, x := range []struct {
		raw string
		dst *json.Number
	}{
		{f.CostPrice, &p.CostPrice},
		{f.SellingPrice, &p.SellingPrice},
		{f.OriginalPrice, &p.OriginalPrice},
	} {
		raw := strings.TrimSpace(x.raw)
		if raw == "" {
			*x.dst = "0"
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return backend.AddOnPayload{}, &validate.Problem{Msg: MsgAddOnBadPrice}
		}
		*x.dst = json.Number(d.String())
	}
	return p, nil
}
