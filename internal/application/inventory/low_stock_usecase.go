package inventory

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/poolstock-api/internal/domain/entity"
	"github.com/tu-usuario/poolstock-api/internal/domain/repository"
)

// LowStockItem artículo con stock agregado en o por debajo de su punto de reorden.
type LowStockItem struct {
	Item          *entity.Item
	Aggregate     int64           // suma sobre todas las ubicaciones
	SuggestedQty  int64           // ReorderQuantity, o el déficit si no está configurada
	EstimatedCost decimal.Decimal // SuggestedQty * CostPerUnit
}

// LowStockUseCase escáner de stock bajo: lector puro del libro, sin mutaciones.
type LowStockUseCase struct {
	itemRepo  repository.ItemRepository
	stockRepo repository.StockEntryRepository
}

// NewLowStockUseCase construye el escáner.
func NewLowStockUseCase(itemRepo repository.ItemRepository, stockRepo repository.StockEntryRepository) *LowStockUseCase {
	return &LowStockUseCase{itemRepo: itemRepo, stockRepo: stockRepo}
}

// Scan devuelve los artículos cuyo agregado sobre todas las ubicaciones es
// menor o igual a su punto de reorden. Punto de reorden nil = nunca bajo.
func (uc *LowStockUseCase) Scan(ctx context.Context) ([]LowStockItem, error) {
	items, err := uc.itemRepo.List("", 0, 0)
	if err != nil {
		return nil, err
	}
	totals, err := uc.stockRepo.AggregateAll()
	if err != nil {
		return nil, err
	}

	low := make([]LowStockItem, 0)
	for _, item := range items {
		if item.ReorderPoint == nil {
			continue
		}
		aggregate := totals[item.ID]
		if aggregate > *item.ReorderPoint {
			continue
		}
		suggested := *item.ReorderPoint - aggregate
		if item.ReorderQuantity != nil {
			suggested = *item.ReorderQuantity
		}
		low = append(low, LowStockItem{
			Item:          item,
			Aggregate:     aggregate,
			SuggestedQty:  suggested,
			EstimatedCost: decimal.NewFromInt(suggested).Mul(item.CostPerUnit),
		})
	}
	return low, nil
}

// LowEntries devuelve las entradas de stock con cantidad por debajo de su
// mínimo configurado (distinto del punto de reorden a nivel de artículo).
func (uc *LowStockUseCase) LowEntries(ctx context.Context) ([]*entity.StockEntry, error) {
	return uc.stockRepo.ListBelowMinimum()
}
