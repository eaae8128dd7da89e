package xlsx

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/phenrril/fashionshop/internal/domain"
)

const (
	SheetOrders = "Pedidos"
	SheetItems  = "Items"
)

var (
	orderHeader = []interface{}{"ID", "Cliente", "Teléfono", "Email", "Dirección", "Estado", "Pago", "Unidades", "Total", "Creado", "Notas"}
	itemHeader  = []interface{}{"Pedido", "Producto", "Nombre", "Categoría", "Color", "Talle", "Cantidad", "Precio", "Subtotal"}
)

// Exporter writes orders as a two-sheet workbook: one row per order and one
// row per enriched line.
type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) WriteOrders(w io.Writer, orders []domain.OrderDetail) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetOrders); err != nil {
		return errors.Wrap(err, "renombrar hoja")
	}
	if _, err := f.NewSheet(SheetItems); err != nil {
		return errors.Wrap(err, "crear hoja items")
	}
	if err := setRow(f, SheetOrders, 1, orderHeader); err != nil {
		return err
	}
	if err := setRow(f, SheetItems, 1, itemHeader); err != nil {
		return err
	}

	itemRow := 2
	for i, d := range orders {
		o := d.Order
		row := []interface{}{
			string(o.ID), o.DisplayName(), o.DisplayPhone(), o.Customer.Email, o.Customer.Address,
			o.Status.Label(), o.PaymentMethod.Label(), d.TotalQuantity, int64(d.Total), createdCell(o), o.Notes,
		}
		if err := setRow(f, SheetOrders, i+2, row); err != nil {
			return err
		}
		for _, it := range d.Items {
			line := []interface{}{
				string(o.ID), it.ID, it.FullName, it.Category, it.Color, it.Size,
				it.Quantity, int64(it.Price), int64(it.LineTotal),
			}
			if err := setRow(f, SheetItems, itemRow, line); err != nil {
				return err
			}
			itemRow++
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "escribir xlsx")
	}
	return nil
}

// createdCell shows the server timestamp as date and time, or the raw text
// when it does not parse.
func createdCell(o domain.Order) string {
	if t, ok := o.Created(); ok {
		return t.Format("2006-01-02 15:04")
	}
	return o.CreatedAt
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.Wrapf(err, "celda fila %d", row)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return errors.Wrapf(err, "hoja %s fila %d", sheet, row)
	}
	return nil
}
