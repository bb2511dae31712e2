package app

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/smartagro/smartagro/internal/catalog"
	"github.com/smartagro/smartagro/internal/domain"
)

// checkCatalog seeds the sample data set into the database. Rows already
// present are kept as they are.
func (a *Application) checkCatalog(ctx context.Context, repo *catalog.GormRepository) error {
	fixtures := catalog.Fixtures()
	if err := catalog.Validate(fixtures); err != nil {
		return errors.Wrap(err, "invalid sample data")
	}
	created, err := repo.Seed(ctx, fixtures)
	if err != nil {
		zap.L().Error("failed to seed catalog", zap.Error(err))
		return err
	}
	if created > 0 {
		zap.L().Info("initialized catalog sample data", zap.Int("rows", created))
	}
	return nil
}

// InitDb drops and recreates every table, then seeds the sample data
func (a *Application) InitDb(ctx context.Context) error {
	if a.gormDB == nil {
		return errors.New("no database configured")
	}
	if err := a.gormDB.Migrator().DropTable(domain.Tables...); err != nil {
		return errors.Wrap(err, "drop tables")
	}
	if err := a.MigrateDB(false); err != nil {
		return err
	}
	return a.checkCatalog(ctx, catalog.NewGormRepository(a.gormDB, catalog.LogoAsset))
}
