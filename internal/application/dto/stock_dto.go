package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/stock/adjustments (y cada ítem del masivo).
type AdjustStockRequest struct {
	ProductID         string          `json:"product_id"`
	BranchID          string          `json:"branch_id"`
	Delta             decimal.Decimal `json:"delta"`
	Reason            string          `json:"reason"`
	Notes             string          `json:"notes,omitempty"`
	ExternalReference string          `json:"external_reference,omitempty"`
}

// BulkAdjustRequest body para POST /api/stock/adjustments/bulk.
type BulkAdjustRequest struct {
	Items []AdjustStockRequest `json:"items"`
}

// SetInitialStockRequest body para POST /api/stock/initial.
type SetInitialStockRequest struct {
	ProductID      string          `json:"product_id"`
	BranchID       string          `json:"branch_id"`
	TargetQuantity decimal.Decimal `json:"target_quantity"`
}

// StockBalanceDTO existencia actual de un producto en una sucursal.
type StockBalanceDTO struct {
	ProductID       string           `json:"product_id"`
	BranchID        string           `json:"branch_id"`
	Quantity        decimal.Decimal  `json:"quantity"`
	MinThreshold    *decimal.Decimal `json:"min_threshold,omitempty"`
	MaxThreshold    *decimal.Decimal `json:"max_threshold,omitempty"`
	LastRestockedAt *time.Time       `json:"last_restocked_at,omitempty"`
}

// StockMovementDTO un registro del libro de movimientos.
type StockMovementDTO struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	BranchID          string          `json:"branch_id"`
	Delta             decimal.Decimal `json:"delta"`
	PreviousQuantity  decimal.Decimal `json:"previous_quantity"`
	ResultingQuantity decimal.Decimal `json:"resulting_quantity"`
	Reason            string          `json:"reason"`
	Notes             string          `json:"notes,omitempty"`
	ExternalReference string          `json:"external_reference,omitempty"`
	CreatedBy         string          `json:"created_by,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// AdjustmentResponse saldo actualizado + movimiento creado por un ajuste.
type AdjustmentResponse struct {
	Balance  StockBalanceDTO  `json:"balance"`
	Movement StockMovementDTO `json:"movement"`
}

// BranchStockSummaryDTO resumen de inventario de una sucursal.
// TotalProducts cuenta todas las existencias activas (con o sin control de
// inventario); los conteos de alerta y la valorización solo consideran
// productos con control activo.
type BranchStockSummaryDTO struct {
	BranchID        string          `json:"branch_id"`
	TotalProducts   int             `json:"total_products"`
	LowStockCount   int             `json:"low_stock_count"`
	OutOfStockCount int             `json:"out_of_stock_count"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"` // Σ cantidad × precio de salón
}

// ProductPriceDTO precio vigente de un producto en una sucursal.
type ProductPriceDTO struct {
	ProductID string          `json:"product_id"`
	BranchID  string          `json:"branch_id"`
	Tier      string          `json:"tier"`
	Price     decimal.Decimal `json:"price"`
}

// LowStockAlertDTO una alerta de bajo stock, con su razón de urgencia
// (cantidad / umbral; 0 = agotado, lo más urgente).
type LowStockAlertDTO struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	UnitType      string          `json:"unit_type"`
	Quantity      decimal.Decimal `json:"quantity"`
	MinStockAlert decimal.Decimal `json:"min_stock_alert"`
	UrgencyRatio  decimal.Decimal `json:"urgency_ratio"`
}
