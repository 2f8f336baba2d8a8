package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-services-admin/internal/core/auth"
	"home-services-admin/internal/service"
	"home-services-admin/internal/transport/http/response"
	"home-services-admin/pkg/utils"
)

// AuthHandler 后台单账号登录，账号和 bcrypt 哈希来自配置
type AuthHandler struct {
	jwter     *auth.JWTer
	adminUser string
	adminHash string
}

func NewAuthHandler(jwter *auth.JWTer, adminUser, adminHash string) *AuthHandler {
	return &AuthHandler{jwter: jwter, adminUser: adminUser, adminHash: adminHash}
}

func (h *AuthHandler) Mount(g *gin.RouterGroup) {
	g.POST("/auth/login", h.Login)
}

type loginIn struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginOut struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BindErr(c, err)
		return
	}
	if in.Username != h.adminUser || !utils.CheckPassword(in.Password, h.adminHash) {
		response.Abort(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := h.jwter.Issue(in.Username, "admin")
	if err != nil {
		response.Err(c, service.Internal("issue token failed", err))
		return
	}
	c.JSON(http.StatusOK, loginOut{Token: token})
}
