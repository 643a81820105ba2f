package handler

import (
	"net/http"

	"marketadmin/internal/app/dto"
	"marketadmin/internal/app/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *Handler) GetPendingPayments(c *gin.Context) {
	limit, offset, err := pagination(c)
	if err != nil {
		errorHandler(c, http.StatusBadRequest, err)
		return
	}
	payments, total, err := h.Repository.ListPendingPayments(limit, offset)
	if err != nil {
		repositoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": payments, "total": total})
}

func (h *Handler) GetPayment(c *gin.Context) {
	payment, err := h.Repository.GetPayment(c.Param("id"))
	if err != nil {
		repositoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// ApprovePayment records the admin decision on a manual transfer.
func (h *Handler) ApprovePayment(c *gin.Context) {
	var req dto.ApprovePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorHandler(c, http.StatusBadRequest, err)
		return
	}

	var adminID string
	if me, ok := middleware.GetUserFromContext(c); ok {
		adminID = me.ID
	}

	payment, err := h.Repository.DecidePayment(c.Param("id"), req.Status, adminID)
	if err != nil {
		repositoryError(c, err)
		return
	}
	logrus.Infof("payment %s %s by %s", payment.ID, payment.Status, adminID)
	c.JSON(http.StatusOK, payment)
}
