package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"charity-fund-api/internal/service"
	mdw "charity-fund-api/internal/transport/http/middleware"
	resp "charity-fund-api/internal/transport/http/response"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Mount(g *gin.RouterGroup, authed gin.HandlerFunc) {
	g.GET("/balance", authed, h.balance)
	g.PUT("/balance", authed, h.addBalance)
	g.GET("/:id", h.profile)
}

func (h *UserHandler) balance(c *gin.Context) {
	b, err := h.svc.Balance(c.Request.Context(), c.GetString(mdw.KeyUserID))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, http.StatusOK, gin.H{"balance": b})
}

func (h *UserHandler) addBalance(c *gin.Context) {
	var in struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.svc.AddBalance(c.Request.Context(), c.GetString(mdw.KeyUserID), in.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, http.StatusOK, gin.H{"balance": b})
}

func (h *UserHandler) profile(c *gin.Context) {
	u, err := h.svc.PublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, http.StatusOK, u)
}
