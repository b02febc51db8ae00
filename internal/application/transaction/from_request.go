package transaction

import (
	"github.com/jhoicas/Licoreria-api/internal/application/dto"
)

// Adaptadores de los requests HTTP a las entradas del motor. userID viene del token.

func SaleInputFromRequest(userID int64, in dto.CreateSaleRequest) CreateSaleInput {
	lines := make([]SaleLineInput, len(in.Lines))
	for i, l := range in.Lines {
		lines[i] = SaleLineInput{StockItemID: l.StockItemID, Quantity: l.Quantity, UnitPrice: l.UnitPrice, Discount: l.Discount}
	}
	return CreateSaleInput{
		UserID:        userID,
		Folio:         in.Folio,
		PaymentMethod: in.PaymentMethod,
		ClientID:      in.ClientID,
		EmployeeID:    in.EmployeeID,
		IssuedAt:      in.IssuedAt,
		Notes:         in.Notes,
		Lines:         lines,
	}
}

func PurchaseInputFromRequest(userID int64, in dto.CreatePurchaseRequest) CreatePurchaseInput {
	lines := make([]PurchaseLineInput, len(in.Lines))
	for i, l := range in.Lines {
		lines[i] = PurchaseLineInput{StockItemID: l.StockItemID, Quantity: l.Quantity, UnitPrice: l.UnitPrice}
	}
	return CreatePurchaseInput{
		UserID:     userID,
		Folio:      in.Folio,
		SupplierID: in.SupplierID,
		IssuedAt:   in.IssuedAt,
		Notes:      in.Notes,
		Lines:      lines,
	}
}

func ReturnInputFromRequest(userID int64, in dto.CreateReturnRequest) CreateReturnInput {
	lines := make([]ReturnLineInput, len(in.Lines))
	for i, l := range in.Lines {
		lines[i] = ReturnLineInput{SaleLineID: l.SaleLineID, StockItemID: l.StockItemID, Quantity: l.Quantity, Reason: l.Reason}
	}
	return CreateReturnInput{
		UserID:   userID,
		Folio:    in.Folio,
		SaleID:   in.SaleID,
		Reason:   in.Reason,
		IssuedAt: in.IssuedAt,
		Notes:    in.Notes,
		Lines:    lines,
	}
}

func AdjustInputFromRequest(userID int64, in dto.AdjustStockRequest) AdjustStockInput {
	return AdjustStockInput{UserID: userID, StockItemID: in.StockItemID, Quantity: in.Quantity, Reason: in.Reason}
}

func CountInputFromRequest(userID int64, in dto.StockCountRequest) ReconcileCountInput {
	return ReconcileCountInput{UserID: userID, StockItemID: in.StockItemID, Counted: in.Counted, Reason: in.Reason}
}
