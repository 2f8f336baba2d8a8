package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-services-admin/internal/service"
	"home-services-admin/internal/transport/http/response"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Mount(g *gin.RouterGroup) {
	g.POST("/users", h.Create)
	g.GET("/users", h.List)
	g.GET("/users/:id", h.Get)
	g.PATCH("/users/:id", h.Update)
	g.DELETE("/users/:id", h.Delete)
}

func (h *UserHandler) Create(c *gin.Context) {
	var in service.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BindErr(c, err)
		return
	}
	u, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *UserHandler) List(c *gin.Context) {
	var q service.UserQuery
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

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	var in service.UpdateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BindErr(c, err)
		return
	}
	u, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.svc.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		response.Err(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
