package handler

import (
	"errors"
	"net/http"

	"marketadmin/internal/app/dto"
	"marketadmin/internal/app/middleware"
	"marketadmin/internal/app/repository"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetUsers(c *gin.Context) {
	limit, offset, err := pagination(c)
	if err != nil {
		errorHandler(c, http.StatusBadRequest, err)
		return
	}
	users, total, err := h.Repository.ListUsers(limit, offset)
	if err != nil {
		repositoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "total": total})
}

func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.Repository.GetUserByID(c.Param("id"))
	if err != nil {
		repositoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorHandler(c, http.StatusBadRequest, err)
		return
	}
	user, err := h.Repository.UpdateUser(c.Param("id"), repository.UserUpdate{
		Email:      req.Email,
		Name:       req.Name,
		Role:       req.Role,
		IsActive:   req.IsActive,
		IsVerified: req.IsVerified,
	})
	if err != nil {
		repositoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateUserPassword(c *gin.Context) {
	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorHandler(c, http.StatusBadRequest, err)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		errorHandler(c, http.StatusInternalServerError, err)
		return
	}
	if err := h.Repository.UpdateUserPassword(c.Param("id"), string(hash)); err != nil {
		repositoryError(c, err)
		return
	}
	message(c, "password updated successfully")
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if me, ok := middleware.GetUserFromContext(c); ok && me.ID == id {
		errorHandler(c, http.StatusBadRequest, errors.New("cannot delete your own account"))
		return
	}
	if err := h.Repository.DeleteUser(id); err != nil {
		repositoryError(c, err)
		return
	}
	message(c, "user deleted successfully")
}
