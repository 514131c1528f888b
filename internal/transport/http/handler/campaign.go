package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"charity-fund-api/internal/service"
	mdw "charity-fund-api/internal/transport/http/middleware"
	resp "charity-fund-api/internal/transport/http/response"
)

type CampaignHandler struct {
	svc *service.CampaignService
}

func NewCampaignHandler(svc *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{svc: svc}
}

// Mount 注意 /my-campaigns 要先于 /:id 注册为静态路由
func (h *CampaignHandler) Mount(g *gin.RouterGroup, authed gin.HandlerFunc) {
	g.GET("", h.list)
	g.GET("/my-campaigns", authed, h.listMine)
	g.GET("/:id", h.get)
	g.POST("", authed, h.create)
	g.PUT("/:id", authed, h.update)
	g.DELETE("/:id", authed, h.delete)
}

func (h *CampaignHandler) list(c *gin.Context) {
	out, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	resp.List(c, http.StatusOK, len(out), out)
}

func (h *CampaignHandler) listMine(c *gin.Context) {
	out, err := h.svc.ListMine(c.Request.Context(), c.GetString(mdw.KeyUserID))
	if err != nil {
		fail(c, err)
		return
	}
	resp.List(c, http.StatusOK, len(out), out)
}

func (h *CampaignHandler) get(c *gin.Context) {
	out, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, http.StatusOK, out)
}

func (h *CampaignHandler) create(c *gin.Context) {
	var in service.CampaignInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Create(c.Request.Context(), c.GetString(mdw.KeyUserID), in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, http.StatusCreated, out)
}

func (h *CampaignHandler) update(c *gin.Context) {
	var patch service.CampaignPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		resp.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Update(c.Request.Context(),
		c.GetString(mdw.KeyUserID), c.GetString(mdw.KeyRole), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, http.StatusOK, out)
}

func (h *CampaignHandler) delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(),
		c.GetString(mdw.KeyUserID), c.GetString(mdw.KeyRole), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, http.StatusOK, gin.H{})
}
