package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-services-admin/internal/service"
	"home-services-admin/internal/transport/http/response"
)

type BookingHandler struct {
	svc *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) Mount(g *gin.RouterGroup) {
	g.POST("/bookings", h.Create)
	g.GET("/bookings", h.List)
	g.GET("/bookings/stats", h.Stats)
	g.GET("/bookings/service/:serviceId", h.ByService)
	g.GET("/bookings/:id", h.Get)
	g.PATCH("/bookings/:id", h.Update)
	g.DELETE("/bookings/:id", h.Delete)
}

func (h *BookingHandler) Create(c *gin.Context) {
	var in service.CreateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BindErr(c, err)
		return
	}
	b, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) List(c *gin.Context) {
	var q service.BookingQuery
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

func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Update(c *gin.Context) {
	var in service.UpdateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BindErr(c, err)
		return
	}
	b, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.svc.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		response.Err(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *BookingHandler) ByService(c *gin.Context) {
	items, err := h.svc.ByService(c.Request.Context(), c.Param("serviceId"))
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
