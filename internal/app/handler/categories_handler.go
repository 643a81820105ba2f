package handler

import (
	"net/http"

	"marketadmin/internal/app/dto"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.Repository.ListCategories()
	if err != nil {
		repositoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.Repository.GetCategory(c.Param("id"))
	if err != nil {
		repositoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorHandler(c, http.StatusBadRequest, err)
		return
	}
	category, err := h.Repository.CreateCategory(req.Name)
	if err != nil {
		repositoryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorHandler(c, http.StatusBadRequest, err)
		return
	}
	category, err := h.Repository.UpdateCategory(c.Param("id"), req.Name)
	if err != nil {
		repositoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.Repository.DeleteCategory(c.Param("id")); err != nil {
		repositoryError(c, err)
		return
	}
	message(c, "category deleted successfully")
}
