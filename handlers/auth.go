package handlers

import (
	"errors"
	"net/http"

	"guardrail-quote/database"
	"guardrail-quote/middleware"
	"guardrail-quote/types"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := database.FindUser(req.Username)
	if errors.Is(err, database.ErrNotFound) {
		h.fail(c, http.StatusUnauthorized, "User not found")
		return
	}
	if err != nil {
		h.internalError(c, "login", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.log.Warn("Login rejected", zap.String("username", req.Username))
		h.fail(c, http.StatusUnauthorized, "Invalid Password")
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserID, user.ID)
	session.Set(middleware.SessionRole, user.Role)
	session.Set(middleware.SessionUsername, user.Username)
	if err := session.Save(); err != nil {
		h.internalError(c, "login", err)
		return
	}

	h.activity.Log(user.Username, "login", "")
	c.JSON(http.StatusOK, user)
}

func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	session.Save()
	c.Status(http.StatusNoContent)
}

func (h *Handler) Me(c *gin.Context) {
	session := sessions.Default(c)
	c.JSON(http.StatusOK, gin.H{
		"username": session.Get(middleware.SessionUsername),
		"role":     session.Get(middleware.SessionRole),
	})
}
