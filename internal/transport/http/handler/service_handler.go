package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-services-admin/internal/service"
	"home-services-admin/internal/transport/http/response"
)

type ServiceHandler struct {
	svc *service.ServiceService
}

func NewServiceHandler(svc *service.ServiceService) *ServiceHandler {
	return &ServiceHandler{svc: svc}
}

func (h *ServiceHandler) Mount(g *gin.RouterGroup) {
	g.POST("/services", h.Create)
	g.GET("/services", h.List)
	g.GET("/services/stats", h.Stats) // 必须先于 /:id 注册
	g.GET("/services/:id", h.Get)
	g.PATCH("/services/:id", h.Update)
	g.DELETE("/services/:id", h.Delete)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var in service.CreateServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BindErr(c, err)
		return
	}
	svc, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) List(c *gin.Context) {
	var q service.ServiceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindErr(c, err)
		return
	}
	res, err := h.svc.FindAll(c.Request.Context(), q)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	svc, err := h.svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var in service.UpdateServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BindErr(c, err)
		return
	}
	svc, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	if err := h.svc.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		response.Err(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ServiceHandler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
