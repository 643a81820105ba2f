package handler

import (
	"errors"
	"net/http"

	"marketadmin/internal/app/ds"
	"marketadmin/internal/app/dto"
	"marketadmin/internal/app/middleware"
	"marketadmin/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = errors.New("invalid credentials")

type AuthHandler struct {
	Repository *repository.Repository
	Auth       *middleware.AuthMiddleware
}

func NewAuthHandler(r *repository.Repository, auth *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{Repository: r, Auth: auth}
}

// AdminRegister creates an admin account. It does not log the caller in.
func (h *AuthHandler) AdminRegister(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorHandler(c, http.StatusBadRequest, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	user, err := h.Repository.CreateUser(req.Email, string(hash), req.Name, ds.RoleAdmin)
	if err != nil {
		repositoryError(c, err)
		return
	}

	logrus.Infof("admin %s registered", user.Email)
	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "admin registered successfully",
		User:    *user,
	})
}

// AdminLogin checks the password and issues a JWT for active admins.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorHandler(c, http.StatusBadRequest, err)
		return
	}

	user, hash, err := h.Repository.UserCredentials(req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorHandler(c, http.StatusUnauthorized, errInvalidCredentials)
			return
		}
		repositoryError(c, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		errorHandler(c, http.StatusUnauthorized, errInvalidCredentials)
		return
	}
	if user.Role != ds.RoleAdmin {
		errorHandler(c, http.StatusForbidden, errors.New("admin access required"))
		return
	}
	if !user.IsActive {
		errorHandler(c, http.StatusForbidden, errors.New("account is disabled"))
		return
	}

	token, err := h.Auth.IssueToken(user)
	if err != nil {
		errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: *user})
}
