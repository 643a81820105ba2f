package handler

import (
	"net/http"

	"marketadmin/internal/app/ds"
	"marketadmin/internal/app/dto"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listOrders(c *gin.Context, status ds.OrderStatus) {
	limit, offset, err := pagination(c)
	if err != nil {
		errorHandler(c, http.StatusBadRequest, err)
		return
	}
	orders, total, err := h.Repository.ListOrders(limit, offset, status)
	if err != nil {
		repositoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders, "total": total})
}

func (h *Handler) GetAllOrders(c *gin.Context) {
	h.listOrders(c, "")
}

func (h *Handler) GetPaidOrders(c *gin.Context) {
	h.listOrders(c, ds.OrderStatusPaid)
}

func (h *Handler) UpdateLicenseRedeemed(c *gin.Context) {
	var req dto.LicenseRedeemedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorHandler(c, http.StatusBadRequest, err)
		return
	}
	order, err := h.Repository.SetLicenseRedeemed(c.Param("id"), req.Redeemed)
	if err != nil {
		repositoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateLicense issues a license as a paid order. Without total the
// product price after discount is charged.
func (h *Handler) CreateLicense(c *gin.Context) {
	var req dto.CreateLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorHandler(c, http.StatusBadRequest, err)
		return
	}
	order, err := h.Repository.CreateLicense(req.ProductID, req.UserID, req.Total)
	if err != nil {
		repositoryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}
