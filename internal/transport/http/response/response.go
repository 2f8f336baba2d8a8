package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"home-services-admin/internal/service"
)

// 错误体约定：
//   400 校验 {"error":"ValidationError","details":[{field,message}]}
//   400 业务 {"error": msg}
//   404      {"error": msg}
//   500      {"error":"Internal Server Error","message": msg}

type errBody struct {
	Error   string               `json:"error"`
	Message string               `json:"message,omitempty"`
	Details []service.FieldError `json:"details,omitempty"`
}

// Err 把业务错误按 Kind 映射到 HTTP 状态码
func Err(c *gin.Context, err error) {
	var ae *service.Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case service.KindValidation:
			c.JSON(http.StatusBadRequest, errBody{Error: "ValidationError", Details: ae.Details})
			return
		case service.KindDomain:
			c.JSON(http.StatusBadRequest, errBody{Error: ae.Msg})
			return
		case service.KindNotFound:
			c.JSON(http.StatusNotFound, errBody{Error: ae.Msg})
			return
		}
	}
	_ = c.Error(err) // 交给访问日志
	c.JSON(http.StatusInternalServerError, errBody{Error: "Internal Server Error", Message: err.Error()})
}

// BindErr 绑定/校验失败统一转成 ValidationError，逐字段全量上报
func BindErr(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]service.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, service.FieldError{
				Field:   fieldPath(fe.Namespace()),
				Message: validationMessage(fe),
			})
		}
		c.JSON(http.StatusBadRequest, errBody{Error: "ValidationError", Details: details})
		return
	}
	// JSON 语法错误、类型不匹配等
	c.JSON(http.StatusBadRequest, errBody{
		Error:   "ValidationError",
		Details: []service.FieldError{{Field: "", Message: err.Error()}},
	})
}

// Abort 中间件用的简单错误体
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errBody{Error: msg})
}

// fieldPath 去掉最外层结构体名：CreateUserInput.workExperience[0].startDate
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed on " + fe.Tag()
	}
}
