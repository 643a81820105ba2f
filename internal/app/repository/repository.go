package repository

import (
	"errors"
	"fmt"
	"strings"

	"marketadmin/internal/app/ds"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultSQLiteFile is used when no DSN is configured.
const DefaultSQLiteFile = "fakeapi.db"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")
)

type Repository struct {
	db *gorm.DB
}

// Dialector picks the driver for dsn: sqlite for an empty or sqlite:
// prefixed DSN, postgres otherwise.
func Dialector(dsn string) gorm.Dialector {
	if dsn == "" {
		return sqlite.Open(DefaultSQLiteFile)
	}
	if file, ok := strings.CutPrefix(dsn, "sqlite:"); ok {
		return sqlite.Open(file)
	}
	return postgres.Open(dsn)
}

// New opens the database, migrates the schema and seeds the platforms.
func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(Dialector(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	r := &Repository{db: db}
	if err := r.Migrate(); err != nil {
		return nil, err
	}
	if err := r.SeedPlatforms(ds.DefaultPlatforms); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repository) Migrate() error {
	err := r.db.AutoMigrate(
		&User{},
		&Category{},
		&Platform{},
		&Product{},
		&Order{},
		&Payment{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// SeedPlatforms inserts the named platforms that do not exist yet.
func (r *Repository) SeedPlatforms(names []string) error {
	for _, name := range names {
		p := Platform{Name: name}
		if err := r.db.Where(Platform{Name: name}).FirstOrCreate(&p).Error; err != nil {
			return fmt.Errorf("seed platform %s: %w", name, err)
		}
	}
	logrus.Debugf("platforms seeded: %s", strings.Join(names, ", "))
	return nil
}

func (r *Repository) ListPlatforms() ([]ds.Platform, error) {
	var platforms []Platform
	if err := r.db.Order("name").Find(&platforms).Error; err != nil {
		return nil, err
	}
	out := make([]ds.Platform, len(platforms))
	for i := range platforms {
		out[i] = platforms[i].toDS()
	}
	return out, nil
}

// Counts reports the number of rows per table, used by the migrate tool.
func (r *Repository) Counts() (map[string]int64, error) {
	counts := make(map[string]int64)
	for name, model := range map[string]interface{}{
		"users":      &User{},
		"categories": &Category{},
		"platforms":  &Platform{},
		"products":   &Product{},
		"orders":     &Order{},
		"payments":   &Payment{},
	} {
		var n int64
		if err := r.db.Model(model).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}
		counts[name] = n
	}
	return counts, nil
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return err
}

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
