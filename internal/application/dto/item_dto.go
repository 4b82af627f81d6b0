package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Name            string          `json:"name"`
	Category        string          `json:"category,omitempty"`
	UnitMeasure     string          `json:"unit_measure,omitempty"`
	CostPerUnit     decimal.Decimal `json:"cost_per_unit"`
	ReorderPoint    *int64          `json:"reorder_point,omitempty"`
	ReorderQuantity *int64          `json:"reorder_quantity,omitempty"`
}

// UpdateItemRequest body para PUT /api/items/:id (campos opcionales).
type UpdateItemRequest struct {
	Name            *string          `json:"name,omitempty"`
	Category        *string          `json:"category,omitempty"`
	UnitMeasure     *string          `json:"unit_measure,omitempty"`
	CostPerUnit     *decimal.Decimal `json:"cost_per_unit,omitempty"`
	ReorderPoint    *int64           `json:"reorder_point,omitempty"`
	ReorderQuantity *int64           `json:"reorder_quantity,omitempty"`
	Active          *bool            `json:"active,omitempty"`
}

// ItemResponse representación de un artículo en respuestas.
type ItemResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category,omitempty"`
	UnitMeasure     string          `json:"unit_measure,omitempty"`
	CostPerUnit     decimal.Decimal `json:"cost_per_unit"`
	ReorderPoint    *int64          `json:"reorder_point,omitempty"`
	ReorderQuantity *int64          `json:"reorder_quantity,omitempty"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ItemListResponse listado paginado de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LowStockItemResponse artículo reportado por el escáner de stock bajo.
type LowStockItemResponse struct {
	Item          ItemResponse    `json:"item"`
	Aggregate     int64           `json:"aggregate_quantity"`
	SuggestedQty  int64           `json:"suggested_order_qty"`
	EstimatedCost decimal.Decimal `json:"estimated_order_cost"`
}
