package api

import (
	"context"
	"net/http"

	"github.com/fsdevblog/escrow-ledger/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CatalogHandler struct {
	catalogSvs  CatalogServicer
	shipmentSvs ShipmentServicer
}

func NewCatalogHandler(catalogSvs CatalogServicer, shipmentSvs ShipmentServicer) *CatalogHandler {
	return &CatalogHandler{
		catalogSvs:  catalogSvs,
		shipmentSvs: shipmentSvs,
	}
}

// Index GET RouteGroup + CatalogRoute.
func (h *CatalogHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	items, err := h.catalogSvs.List(ctx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type AddCatalogItemParams struct {
	Title       string          `binding:"required,max_bytes=255" json:"title"`
	Description string          `binding:"max_bytes=2000"         json:"description"`
	Category    string          `binding:"max_bytes=64"           json:"category"`
	Price       decimal.Decimal `binding:"positive_decimal"       json:"price"`
	Image       string          `binding:"max_bytes=2048"         json:"image"`
}

// Create POST RouteGroup + CatalogRoute. Продавцом листинга становится текущий счет.
func (h *CatalogHandler) Create(c *gin.Context) {
	var params AddCatalogItemParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	item, err := h.catalogSvs.Add(ctx, getAccountFromContext(c), service.AddCatalogItemArgs{
		Title:       params.Title,
		Description: params.Description,
		Category:    params.Category,
		Price:       params.Price,
		Image:       params.Image,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Delete DELETE RouteGroup + CatalogItemRoute. Снять листинг может только его продавец.
func (h *CatalogHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.catalogSvs.Remove(ctx, getAccountFromContext(c), c.Param("id")); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}

type PurchaseParams struct {
	Courier string `binding:"max_bytes=66" json:"courier"`
}

// Purchase POST RouteGroup + PurchaseRoute. Покупка листинга текущим счетом: цена блокируется в эскроу.
func (h *CatalogHandler) Purchase(c *gin.Context) {
	var params PurchaseParams
	if bindErr := bindOptionalJSON(c, &params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	shipment, err := h.shipmentSvs.OpenFromPurchase(ctx, getAccountFromContext(c), c.Param("id"), params.Courier)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shipment)
}
