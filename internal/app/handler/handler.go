// Package handler serves the marketplace admin API for local development
// and end-to-end tests of the admin client.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"marketadmin/internal/app/dto"
	"marketadmin/internal/app/middleware"
	"marketadmin/internal/app/repository"
	"marketadmin/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Repository  *repository.Repository
	Uploads     storage.Uploader
	Auth        *middleware.AuthMiddleware
	AuthHandler *AuthHandler
}

func NewHandler(r *repository.Repository, uploads storage.Uploader, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{
		Repository:  r,
		Uploads:     uploads,
		Auth:        auth,
		AuthHandler: NewAuthHandler(r, auth),
	}
}

// errorHandler writes {"error": message} and logs server-side failures.
func errorHandler(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		logrus.WithError(err).Errorf("%s %s", c.Request.Method, c.FullPath())
	} else {
		logrus.Debugf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

// repositoryError maps repository sentinels onto HTTP statuses.
func repositoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		errorHandler(c, http.StatusNotFound, err)
	case errors.Is(err, repository.ErrConflict):
		errorHandler(c, http.StatusConflict, err)
	case errors.Is(err, repository.ErrInvalid):
		errorHandler(c, http.StatusBadRequest, err)
	default:
		logrus.WithError(err).Error("repository failure")
		errorHandler(c, http.StatusInternalServerError, errors.New("internal server error"))
	}
}

// pagination reads limit and offset, defaulting to 10 and 0.
func pagination(c *gin.Context) (int, int, error) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		return 0, 0, errors.New("limit must be a positive integer")
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, errors.New("offset must be a non-negative integer")
	}
	return limit, offset, nil
}

func message(c *gin.Context, text string) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: text})
}
