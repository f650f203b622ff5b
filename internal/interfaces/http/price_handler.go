package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restobar-api/internal/application/dto"
	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// PriceHandler consulta de la lista de precios por sucursal. Solo lectura:
// la administración de precios pertenece a otro módulo.
type PriceHandler struct {
	priceRepo repository.PriceRepository
}

// NewPriceHandler construye el handler.
func NewPriceHandler(priceRepo repository.PriceRepository) *PriceHandler {
	return &PriceHandler{priceRepo: priceRepo}
}

// GetPrice godoc
// @Summary      Precio vigente de un producto en una sucursal
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Param        branch_id   path   string  true   "ID de la sucursal"
// @Param        product_id  path   string  true   "ID del producto"
// @Param        tier        query  string  false  "Nivel de precio (dine-in, take-away, delivery)"  default(dine-in)
// @Success      200  {object}  dto.ProductPriceDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/branches/{branch_id}/products/{product_id}/price [get]
func (h *PriceHandler) GetPrice(c *fiber.Ctx) error {
	branchID := c.Params("branch_id")
	productID := c.Params("product_id")
	tier := c.Query("tier", entity.PriceTierDineIn)

	price, err := h.priceRepo.GetPrice(c.Context(), productID, branchID, tier)
	if err != nil {
		return stockErrorResponse(c, err)
	}
	if price == nil {
		return stockErrorResponse(c, domain.ErrNotFound)
	}
	return c.JSON(dto.ProductPriceDTO{
		ProductID: productID,
		BranchID:  branchID,
		Tier:      tier,
		Price:     *price,
	})
}
