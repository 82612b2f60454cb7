package migration

import (
	applicationdomain "github.com/gridpoint/interconnect/internal/application/domain"
	"github.com/gridpoint/interconnect/internal/config"
	customerdomain "github.com/gridpoint/interconnect/internal/customer/domain"
	installerdomain "github.com/gridpoint/interconnect/internal/installer/domain"
	statushistorydomain "github.com/gridpoint/interconnect/internal/statushistory/domain"
	systemdomain "github.com/gridpoint/interconnect/internal/system/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		// mysql and sqlite are development backends; let gorm derive the
		// schema from the models there.
		return conn.AutoMigrate(
			&customerdomain.Account{},
			&customerdomain.Premise{},
			&customerdomain.Customer{},
			&installerdomain.Installer{},
			&systemdomain.System{},
			&applicationdomain.Application{},
			&statushistorydomain.Entry{},
		)
	}),
)
