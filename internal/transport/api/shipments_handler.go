package api

import (
	"context"
	"net/http"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ShipmentsHandler struct {
	shipmentSvs ShipmentServicer
}

func NewShipmentsHandler(shipmentSvs ShipmentServicer) *ShipmentsHandler {
	return &ShipmentsHandler{
		shipmentSvs: shipmentSvs,
	}
}

type OpenShipmentParams struct {
	Receiver     string          `binding:"required,max_bytes=66"         json:"receiver"`
	Courier      string          `binding:"required,max_bytes=66"         json:"courier"`
	Title        string          `binding:"required,max_bytes=255"        json:"title"`
	Description  string          `binding:"max_bytes=2000"                json:"description"`
	Category     string          `binding:"max_bytes=64"                  json:"category"`
	Weight       decimal.Decimal `binding:"positive_decimal"              json:"weight"`
	Price        decimal.Decimal `binding:"positive_decimal"              json:"price"`
	PickupDate   string          `binding:"omitempty,datetime=2006-01-02" json:"pickupDate"`
	DeliveryDate string          `binding:"omitempty,datetime=2006-01-02" json:"deliveryDate"`
}

// Create POST RouteGroup + ShipmentsRoute. Эскроу-контракт, отправитель и плательщик - текущий счет.
func (h *ShipmentsHandler) Create(c *gin.Context) {
	var params OpenShipmentParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	shipment, err := h.shipmentSvs.Open(ctx, service.OpenShipmentArgs{
		Sender:       getAccountFromContext(c),
		Receiver:     params.Receiver,
		Courier:      params.Courier,
		Title:        params.Title,
		Description:  params.Description,
		Category:     params.Category,
		Weight:       params.Weight,
		Price:        params.Price,
		PickupDate:   params.PickupDate,
		DeliveryDate: params.DeliveryDate,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shipment)
}

type ListShipmentsParams struct {
	Filter domain.ParticipantFilter `binding:"omitempty,oneof=ALL SENT RECEIVED COURIER" form:"filter"`
}

// Index GET RouteGroup + ShipmentsRoute. Без фильтра отдает все отправления, с фильтром - отправления
// текущего счета в выбранной роли.
func (h *ShipmentsHandler) Index(c *gin.Context) {
	var params ListShipmentsParams
	if bindErr := c.ShouldBindQuery(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	var shipments []domain.Shipment
	var err error
	if params.Filter == "" {
		shipments, err = h.shipmentSvs.ListAll(ctx)
	} else {
		shipments, err = h.shipmentSvs.ListFor(ctx, getAccountFromContext(c), params.Filter)
	}
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipments)
}

// Show GET RouteGroup + ShipmentRoute.
func (h *ShipmentsHandler) Show(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	shipment, err := h.shipmentSvs.Get(ctx, c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipment)
}

// Dispatch POST RouteGroup + DispatchRoute. PENDING -> IN_TRANSIT, отправитель или администратор.
func (h *ShipmentsHandler) Dispatch(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	shipment, err := h.shipmentSvs.Dispatch(ctx, getAccountFromContext(c), c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipment)
}

type UpdateStatusParams struct {
	Status   domain.ShipmentStatus `binding:"required,oneof=PENDING IN_TRANSIT OUT_FOR_DELIVERY DELIVERED CANCELLED" json:"status"`
	Location string                `binding:"max_bytes=255"                                                         json:"location"`
	Message  string                `binding:"max_bytes=1000"                                                        json:"message"`
}

// UpdateStatus POST RouteGroup + ShipmentStatusRoute. Переход статуса с проводкой эскроу.
func (h *ShipmentsHandler) UpdateStatus(c *gin.Context) {
	var params UpdateStatusParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	shipment, err := h.shipmentSvs.Advance(ctx, service.AdvanceShipmentArgs{
		Caller:   getAccountFromContext(c),
		ID:       c.Param("id"),
		Status:   params.Status,
		Location: params.Location,
		Message:  params.Message,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipment)
}
