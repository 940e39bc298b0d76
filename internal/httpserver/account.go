package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	accountsvc "github.com/reagan13/backend-itservice/internal/service/account"
)

type signinRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) signup(c *gin.Context) {
	var in accountsvc.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindError(c, err)
		return
	}
	u, err := h.deps.AccountSvc.Signup(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

func (h *handlers) signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	u, access, refresh, err := h.deps.AccountSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":         u,
		"accessToken":  access,
		"refreshToken": refresh,
		"expiresIn":    h.deps.AccountSvc.AccessTTLSeconds(),
	})
}

func (h *handlers) me(c *gin.Context) {
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		h.fail(c, accountsvc.ErrInvalidToken)
		return
	}
	u, err := h.deps.AccountSvc.LookupByToken(c.Request.Context(), token)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
