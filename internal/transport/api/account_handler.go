package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AccountHandler данные панели текущего счета: баланс, уведомления, статистика.
type AccountHandler struct {
	ledgerSvs   LedgerServicer
	notifySvs   NotificationServicer
	shipmentSvs ShipmentServicer
}

func NewAccountHandler(
	ledgerSvs LedgerServicer,
	notifySvs NotificationServicer,
	shipmentSvs ShipmentServicer,
) *AccountHandler {
	return &AccountHandler{
		ledgerSvs:   ledgerSvs,
		notifySvs:   notifySvs,
		shipmentSvs: shipmentSvs,
	}
}

type BalanceResponse struct {
	Account string          `json:"account"`
	Balance decimal.Decimal `json:"balance"`
}

// Balance GET RouteGroup + BalanceRoute.
func (h *AccountHandler) Balance(c *gin.Context) {
	account := getAccountFromContext(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balance, err := h.ledgerSvs.GetBalance(ctx, account)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{Account: account, Balance: balance})
}

// Notifications GET RouteGroup + NotificationsRoute. Новые первыми.
func (h *AccountHandler) Notifications(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	notifications, err := h.notifySvs.ListFor(ctx, getAccountFromContext(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// Stats GET RouteGroup + StatsRoute.
func (h *AccountHandler) Stats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	stats, err := h.shipmentSvs.Stats(ctx, getAccountFromContext(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
