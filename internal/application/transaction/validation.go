package transaction

import (
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/Licoreria-api/internal/domain"
	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
)

func checkUser(userID int64) error {
	if userID <= 0 {
		return domain.Validationf("usuario requerido")
	}
	return nil
}

// checkText valida un campo de texto; required exige contenido no vacío.
func checkText(field, value string, max int, required bool) error {
	if required && strings.TrimSpace(value) == "" {
		return domain.Validationf("%s requerido", field)
	}
	if utf8.RuneCountInString(value) > max {
		return domain.Validationf("%s excede %d caracteres", field, max)
	}
	return nil
}

func checkFolio(folio string) error {
	return checkText("folio", folio, entity.MaxFolioLength, true)
}

func (in CreateSaleInput) validate() error {
	if err := checkUser(in.UserID); err != nil {
		return err
	}
	if err := checkFolio(in.Folio); err != nil {
		return err
	}
	if err := checkText("método de pago", in.PaymentMethod, entity.MaxPaymentMethodLength, true); err != nil {
		return err
	}
	if err := checkText("observaciones", in.Notes, entity.MaxNotesLength, false); err != nil {
		return err
	}
	if len(in.Lines) == 0 {
		return domain.Validationf("la venta debe tener al menos una línea")
	}
	for i, l := range in.Lines {
		if l.StockItemID <= 0 {
			return domain.Validationf("línea %d: artículo requerido", i+1)
		}
		if l.Quantity <= 0 {
			return domain.Validationf("línea %d: cantidad debe ser mayor a cero", i+1)
		}
		if l.UnitPrice.IsNegative() {
			return domain.Validationf("línea %d: precio unitario negativo", i+1)
		}
		if l.Discount.IsNegative() {
			return domain.Validationf("línea %d: descuento negativo", i+1)
		}
		if l.Discount.GreaterThan(saleLine(l).Gross()) {
			return domain.Validationf("línea %d: descuento mayor al importe", i+1)
		}
	}
	return nil
}

func (in CreatePurchaseInput) validate() error {
	if err := checkUser(in.UserID); err != nil {
		return err
	}
	if err := checkFolio(in.Folio); err != nil {
		return err
	}
	if err := checkText("observaciones", in.Notes, entity.MaxNotesLength, false); err != nil {
		return err
	}
	if len(in.Lines) == 0 {
		return domain.Validationf("la compra debe tener al menos una línea")
	}
	for i, l := range in.Lines {
		if l.StockItemID <= 0 {
			return domain.Validationf("línea %d: artículo requerido", i+1)
		}
		if l.Quantity <= 0 {
			return domain.Validationf("línea %d: cantidad debe ser mayor a cero", i+1)
		}
		if l.UnitPrice.IsNegative() {
			return domain.Validationf("línea %d: precio unitario negativo", i+1)
		}
	}
	return nil
}

func (in CreateReturnInput) validate() error {
	if err := checkUser(in.UserID); err != nil {
		return err
	}
	if err := checkFolio(in.Folio); err != nil {
		return err
	}
	if in.SaleID <= 0 {
		return domain.Validationf("venta requerida")
	}
	if err := checkText("motivo", in.Reason, entity.MaxReasonLength, true); err != nil {
		return err
	}
	if err := checkText("observaciones", in.Notes, entity.MaxNotesLength, false); err != nil {
		return err
	}
	if len(in.Lines) == 0 {
		return domain.Validationf("la devolución debe tener al menos una línea")
	}
	for i, l := range in.Lines {
		if l.SaleLineID <= 0 {
			return domain.Validationf("línea %d: línea de venta requerida", i+1)
		}
		if l.Quantity <= 0 {
			return domain.Validationf("línea %d: cantidad debe ser mayor a cero", i+1)
		}
		if err := checkText("motivo de línea", l.Reason, entity.MaxReasonLength, false); err != nil {
			return err
		}
	}
	return nil
}

func (in AdjustStockInput) validate() error {
	if err := checkUser(in.UserID); err != nil {
		return err
	}
	if in.StockItemID <= 0 {
		return domain.Validationf("artículo requerido")
	}
	if in.Quantity == 0 {
		return domain.Validationf("la cantidad del ajuste no puede ser cero")
	}
	return checkText("motivo", in.Reason, entity.MaxReasonLength, true)
}

func (in ReconcileCountInput) validate() error {
	if err := checkUser(in.UserID); err != nil {
		return err
	}
	if in.StockItemID <= 0 {
		return domain.Validationf("artículo requerido")
	}
	if in.Counted < 0 {
		return domain.Validationf("el conteo no puede ser negativo")
	}
	return checkText("motivo", in.Reason, entity.MaxReasonLength, true)
}
