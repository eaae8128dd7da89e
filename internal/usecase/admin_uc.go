package usecase

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/fashionshop/internal/domain"
)

// OrderExporter writes presented orders to a file format.
type OrderExporter interface {
	WriteOrders(w io.Writer, orders []domain.OrderDetail) error
}

// AdminUC holds the write paths of the admin console. Nothing is changed
// locally until the server confirms; a confirmed change triggers a refresh.
type AdminUC struct {
	api      domain.AdminAPI
	poller   *Poller
	view     *OrderView
	exporter OrderExporter
}

func NewAdminUC(api domain.AdminAPI, poller *Poller, view *OrderView, exporter OrderExporter) *AdminUC {
	return &AdminUC{api: api, poller: poller, view: view, exporter: exporter}
}

func (uc *AdminUC) key(ctx context.Context) (string, error) {
	k := uc.poller.Key(ctx)
	if k == "" {
		return "", errors.Wrap(domain.ErrValidation, "api key faltante")
	}
	return k, nil
}

func (uc *AdminUC) UpdateStatus(ctx context.Context, id, status string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.Wrap(domain.ErrValidation, "id de pedido vacío")
	}
	st, err := domain.ParseOrderStatus(status)
	if err != nil {
		return errors.Wrapf(err, "estado %q", status)
	}
	key, err := uc.key(ctx)
	if err != nil {
		return err
	}
	if err := uc.api.UpdateOrderStatus(ctx, key, id, st); err != nil {
		log.Warn().Err(err).Str("order_id", id).Str("status", string(st)).Msg("no se pudo actualizar el estado")
		return err
	}
	log.Info().Str("order_id", id).Str("status", string(st)).Msg("estado actualizado")
	uc.refresh(ctx)
	return nil
}

// DeleteOrder returns ErrFeatureUnavailable when the server has no delete endpoint.
func (uc *AdminUC) DeleteOrder(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.Wrap(domain.ErrValidation, "id de pedido vacío")
	}
	key, err := uc.key(ctx)
	if err != nil {
		return err
	}
	if err := uc.api.DeleteOrder(ctx, key, id); err != nil {
		if errors.Is(err, domain.ErrFeatureUnavailable) {
			log.Info().Str("order_id", id).Msg("el servidor no permite borrar pedidos")
		} else {
			log.Warn().Err(err).Str("order_id", id).Msg("no se pudo borrar el pedido")
		}
		return err
	}
	log.Info().Str("order_id", id).Msg("pedido borrado")
	uc.refresh(ctx)
	return nil
}

func (uc *AdminUC) Order(ctx context.Context, id string) (domain.OrderDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.OrderDetail{}, errors.Wrap(domain.ErrValidation, "id de pedido vacío")
	}
	key, err := uc.key(ctx)
	if err != nil {
		return domain.OrderDetail{}, err
	}
	o, err := uc.api.GetOrder(ctx, key, id)
	if err != nil {
		return domain.OrderDetail{}, err
	}
	return uc.view.Present(ctx, o)
}

// Export writes every order currently on the server.
func (uc *AdminUC) Export(ctx context.Context, w io.Writer) (int, error) {
	if uc.exporter == nil {
		return 0, errors.Wrap(domain.ErrFeatureUnavailable, "exportador no configurado")
	}
	key, err := uc.key(ctx)
	if err != nil {
		return 0, err
	}
	orders, err := uc.api.ListOrders(ctx, key)
	if err != nil {
		return 0, err
	}
	details, err := uc.view.PresentAll(ctx, orders)
	if err != nil {
		return 0, err
	}
	if err := uc.exporter.WriteOrders(w, details); err != nil {
		return 0, errors.Wrap(err, "exportar pedidos")
	}
	return len(details), nil
}

func (uc *AdminUC) refresh(ctx context.Context) {
	if uc.poller.State() == PollDisconnected {
		return
	}
	_ = uc.poller.Refresh(ctx)
}
