package repository

import (
	"context"
	"fmt"

	"github.com/shenikar/blood_mobilization_system/internal/config"
	"github.com/shenikar/blood_mobilization_system/internal/models"
	"github.com/shenikar/blood_mobilization_system/internal/repository/sqlite"
	"github.com/shenikar/blood_mobilization_system/pkg/postgres"
	"github.com/sirupsen/logrus"
)

// MigrationsDir - каталог SQL-миграций PostgreSQL относительно рабочей директории
const MigrationsDir = "migrations"

// EventStore - хранилище событий, общее для обоих драйверов
type EventStore interface {
	Create(ctx context.Context, event *models.EmergencyEvent) error
	Upsert(ctx context.Context, event *models.EmergencyEvent) error
	GetByID(ctx context.Context, id string) (*models.EmergencyEvent, error)
	List(ctx context.Context, page, pageSize int) ([]*models.EmergencyEvent, error)
	ListActive(ctx context.Context) ([]*models.EmergencyEvent, error)
	Close(ctx context.Context, id string) error
}

// ResponseStore - хранилище ответов доноров
type ResponseStore interface {
	Create(ctx context.Context, response *models.UserResponse) error
	ListByUser(ctx context.Context, userID string) ([]*models.UserResponse, error)
	CountByEvent(ctx context.Context, eventID string) (map[models.ResponseStatus]int, error)
}

// Store объединяет репозитории выбранного драйвера и закрывает его соединения
type Store struct {
	Events    EventStore
	Responses ResponseStore
	closeFn   func()
}

func (s *Store) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

// OpenStore подключается к хранилищу из STORAGE_DRIVER и применяет миграции
func OpenStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*Store, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL, MigrationsDir, log); err != nil {
			return nil, err
		}
		pool, err := postgres.NewPostgresDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Info("Successfully connected to PostgreSQL")
		return &Store{
			Events:    NewEventRepository(pool),
			Responses: NewResponseRepository(pool),
			closeFn:   pool.Close,
		}, nil

	case config.StorageDriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.WithField("path", cfg.SQLitePath).Info("Successfully opened SQLite database")
		return &Store{
			Events:    sqlite.NewEventRepository(db),
			Responses: sqlite.NewResponseRepository(db),
			closeFn: func() {
				if err := db.Close(); err != nil {
					log.WithError(err).Warn("Failed to close SQLite database")
				}
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
