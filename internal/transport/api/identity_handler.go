package api

import (
	"context"
	"net/http"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type IdentityHandler struct {
	identitySvs IdentityServicer
}

func NewIdentityHandler(identitySvs IdentityServicer) *IdentityHandler {
	return &IdentityHandler{
		identitySvs: identitySvs,
	}
}

type ConnectParams struct {
	Account string `binding:"max_bytes=66" json:"account"`
}

type ConnectResponse struct {
	Account string          `json:"account"`
	Balance decimal.Decimal `json:"balance"`
	Seeded  bool            `json:"seeded"`
	Token   string          `json:"token"`
}

// Connect POST RouteGroup + ConnectRoute. Подключает существующий счет или создает новый, выдает токен.
func (h *IdentityHandler) Connect(c *gin.Context) {
	var params ConnectParams
	if bindErr := bindOptionalJSON(c, &params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	res, err := h.identitySvs.Connect(ctx, params.Account)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.Header("Authorization", "Bearer "+res.Token)
	c.JSON(http.StatusOK, ConnectResponse{
		Account: res.Account,
		Balance: res.Balance,
		Seeded:  res.Seeded,
		Token:   res.Token,
	})
}

// Profile GET RouteGroup + ProfileRoute. Профиль текущего счета.
func (h *IdentityHandler) Profile(c *gin.Context) {
	h.renderProfile(c, getAccountFromContext(c))
}

// ProfileByAccount GET RouteGroup + ProfileByAccountRoute.
func (h *IdentityHandler) ProfileByAccount(c *gin.Context) {
	h.renderProfile(c, c.Param("account"))
}

func (h *IdentityHandler) renderProfile(c *gin.Context, account string) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	profile, err := h.identitySvs.Lookup(ctx, account)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type RegisterProfileParams struct {
	Name    string      `binding:"required,max_bytes=255"                          json:"name"`
	Email   string      `binding:"required,email,max_bytes=255"                    json:"email"`
	Phone   string      `binding:"max_bytes=32"                                    json:"phone"`
	Company string      `binding:"max_bytes=255"                                   json:"company"`
	Role    domain.Role `binding:"required,oneof=BUYER USER SELLER COURIER ADMIN" json:"role"`
}

// Register PUT RouteGroup + ProfileRoute. Создает или обновляет профиль текущего счета.
func (h *IdentityHandler) Register(c *gin.Context) {
	var params RegisterProfileParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	profile, err := h.identitySvs.Register(ctx, getAccountFromContext(c), service.RegisterProfileArgs{
		Name:    params.Name,
		Email:   params.Email,
		Phone:   params.Phone,
		Company: params.Company,
		Role:    params.Role,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type SubmitKycParams struct {
	IDDocument   string `binding:"required,max_bytes=2048" json:"idDocument"`
	AddressProof string `binding:"required,max_bytes=2048" json:"addressProof"`
}

// SubmitKyc POST RouteGroup + KycRoute. Отправляет документы текущего счета на проверку.
func (h *IdentityHandler) SubmitKyc(c *gin.Context) {
	var params SubmitKycParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	profile, err := h.identitySvs.SubmitKyc(ctx, getAccountFromContext(c), domain.KycDocuments{
		IDDocument:   params.IDDocument,
		AddressProof: params.AddressProof,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type ListProfilesParams struct {
	KycStatus domain.KycStatus `binding:"omitempty,oneof=NOT_STARTED PENDING VERIFIED REJECTED" form:"kycStatus"`
}

// ListProfiles GET RouteGroup + AdminProfilesRoute. Только для администраторов.
func (h *IdentityHandler) ListProfiles(c *gin.Context) {
	var params ListProfilesParams
	if bindErr := c.ShouldBindQuery(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	profiles, err := h.identitySvs.ListProfiles(ctx, getAccountFromContext(c), params.KycStatus)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

type SetKycParams struct {
	Status domain.KycStatus `binding:"required,oneof=NOT_STARTED PENDING VERIFIED REJECTED" json:"status"`
}

// SetKyc PUT RouteGroup + AdminKycRoute. Только для администраторов.
func (h *IdentityHandler) SetKyc(c *gin.Context) {
	var params SetKycParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	profile, err := h.identitySvs.SetKyc(ctx, getAccountFromContext(c), c.Param("account"), params.Status)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
