package database

import (
	"booknotion-be/internal/config"
	"booknotion-be/internal/model"
	"booknotion-be/internal/pkg/logger"
	"booknotion-be/internal/repository/sqlite"
	"booknotion-be/internal/repository/unitofwork"
)

// NewRepositoryFactory probes the configured postgres connection and falls
// back to the embedded store when it is absent or unreachable, so the server
// always comes up with a working database.
func NewRepositoryFactory(cfg *config.Config, log logger.ILogger) (unitofwork.RepositoryFactory, error) {
	if cfg.Database.Connection != "" {
		db, err := NewGormDBFromDSN(cfg.Database.Connection)
		if err == nil {
			if err := db.AutoMigrate(&model.User{}, &model.Section{}, &model.Notebook{}); err != nil {
				return nil, err
			}
			log.Info("database", "connected to postgres", nil)
			return unitofwork.NewRepositoryFactory(db), nil
		}
		log.Warn("database", "postgres unreachable, falling back to embedded store", map[string]interface{}{
			"error": err.Error(),
		})
	}

	db, err := sqlite.Open(cfg.Database.SQLitePath)
	if err != nil {
		return nil, err
	}
	log.Info("database", "using embedded sqlite store", map[string]interface{}{
		"path": cfg.Database.SQLitePath,
	})
	return sqlite.NewRepositoryFactory(db), nil
}
