package repository

// Repositories agrupa los puertos atados a una misma transacción.
type Repositories struct {
	Items     StockItemRepository
	Movements StockMovementRepository
	Sales     SaleRepository
	Purchases PurchaseRepository
	Returns   ReturnRepository
	Parties   PartyRepository
}
