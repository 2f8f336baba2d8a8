package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-services-admin/internal/domain"
	"home-services-admin/internal/service"
	"home-services-admin/internal/transport/http/response"
)

type JobCategoryHandler struct {
	svc *service.JobCategoryService
}

func NewJobCategoryHandler(svc *service.JobCategoryService) *JobCategoryHandler {
	return &JobCategoryHandler{svc: svc}
}

func (h *JobCategoryHandler) Mount(g *gin.RouterGroup) {
	g.POST("/job-categories", h.Create)
	g.GET("/job-categories", h.List)
	g.GET("/job-categories/:id", h.Get)
	g.PATCH("/job-categories/:id", h.Update)
	g.PATCH("/job-categories/:id/archive", h.Archive)
	g.PATCH("/job-categories/:id/activate", h.Activate)
	g.DELETE("/job-categories/:id", h.Delete)
}

func (h *JobCategoryHandler) Create(c *gin.Context) {
	var in service.CreateJobCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BindErr(c, err)
		return
	}
	jc, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, jc)
}

func (h *JobCategoryHandler) List(c *gin.Context) {
	var q service.JobCategoryQuery
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

func (h *JobCategoryHandler) Get(c *gin.Context) {
	jc, err := h.svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, jc)
}

func (h *JobCategoryHandler) Update(c *gin.Context) {
	var in service.UpdateJobCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BindErr(c, err)
		return
	}
	jc, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, jc)
}

func (h *JobCategoryHandler) Archive(c *gin.Context) {
	jc, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), domain.JobCategoryStatusArchived)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, jc)
}

func (h *JobCategoryHandler) Activate(c *gin.Context) {
	jc, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), domain.JobCategoryStatusActive)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, jc)
}

func (h *JobCategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		response.Err(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
