package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"charity-fund-api/internal/service"
	mdw "charity-fund-api/internal/transport/http/middleware"
	resp "charity-fund-api/internal/transport/http/response"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Mount(g *gin.RouterGroup, authed gin.HandlerFunc) {
	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.GET("/me", authed, h.me)
}

func (h *AuthHandler) register(c *gin.Context) {
	var in service.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	tok, u, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, http.StatusCreated, gin.H{"token": tok, "user": u})
}

func (h *AuthHandler) login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	tok, u, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, http.StatusOK, gin.H{"token": tok, "user": u})
}

func (h *AuthHandler) me(c *gin.Context) {
	u, err := h.svc.Me(c.Request.Context(), c.GetString(mdw.KeyUserID))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, http.StatusOK, u)
}
