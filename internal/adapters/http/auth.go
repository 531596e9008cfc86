package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/catalog"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/domain"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/identity"
)

const ctxUserKey = "auth_user"

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (d Deps) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password required"})
		return
	}

	hash, err := identity.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	user, err := d.Catalog.CreateUser(c.Request.Context(), req.Username, hash)
	if errors.Is(err, catalog.ErrAlreadyExists) {
		c.JSON(http.StatusConflict, gin.H{"message": "Username taken"})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("register")
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid username"})
		return
	}

	token, err := d.Verifier.Issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, tokenResponse{Token: token, User: user})
}

func (d Deps) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password required"})
		return
	}

	user, hash, err := d.Catalog.GetUserByName(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	if err := identity.CheckPassword(req.Password, hash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := d.Verifier.Issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, tokenResponse{Token: token, User: user})
}

// authRequired guards the room routes with a Bearer credential token.
func (d Deps) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token"})
			return
		}
		user, err := d.Verifier.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	u, _ := c.MustGet(ctxUserKey).(*domain.User)
	return u
}
