package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"marketadmin/internal/app/config"
	"marketadmin/internal/app/handler"
	"marketadmin/internal/app/middleware"
	"marketadmin/internal/app/repository"
	"marketadmin/internal/app/storage"
	"marketadmin/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// NewRouter returns a gin engine with CORS open to browser dashboards and,
// when uploads is set, the uploaded files served under /uploads.
func NewRouter(uploads http.FileSystem) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	if uploads != nil {
		r.StaticFS("/uploads", uploads)
	}
	return r
}

// NewUploader stores uploads in MinIO when configured and on disk
// otherwise. The returned file system is nil for MinIO.
func NewUploader(ctx context.Context, cfg *config.Config, fs afero.Fs) (storage.Uploader, http.FileSystem, error) {
	if cfg.MinIO.Enabled() {
		bucket, err := storage.NewMinIOSource(ctx, cfg.MinIO)
		if err != nil {
			return nil, nil, err
		}
		return bucket, nil, nil
	}
	disk := storage.NewDiskUploader(fs, cfg.FakeAPI.UploadDir, "/uploads")
	return disk, afero.NewHttpFs(disk.FS()), nil
}

// Build wires the development backend. The returned cleanup closes the
// database.
func Build(ctx context.Context, cfg *config.Config) (*pkg.Application, func(), error) {
	repo, err := repository.New(cfg.FakeAPI.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("init repository: %w", err)
	}
	cleanup := func() {
		if err := repo.Close(); err != nil {
			logrus.Warnf("close database: %v", err)
		}
	}

	uploads, uploadsFS, err := NewUploader(ctx, cfg, afero.NewOsFs())
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("init uploads: %w", err)
	}

	h := handler.NewHandler(repo, uploads, middleware.NewAuthMiddleware(&cfg.JWT))
	return pkg.NewApp(cfg, NewRouter(uploadsFS), h), cleanup, nil
}

// StartServer builds the backend from cfg and serves until ctx ends.
func StartServer(ctx context.Context, cfg *config.Config) error {
	app, cleanup, err := Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	return app.RunApp(ctx)
}
