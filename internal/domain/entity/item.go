package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del catálogo de inventario (químicos, repuestos,
// equipos de piscina). Identidad inmutable; los atributos de catálogo se editan
// fuera del motor de stock, que solo lee ReorderPoint y ReorderQuantity.
type Item struct {
	ID              int64
	Name            string
	Category        string
	UnitMeasure     string          // unidad de medida: "unit", "kg", "lt", "gal"
	CostPerUnit     decimal.Decimal // costo unitario de referencia
	ReorderPoint    *int64          // nil = nunca se reporta como stock bajo
	ReorderQuantity *int64          // cantidad sugerida de pedido
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
