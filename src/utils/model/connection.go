package model

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/decentraland/thirdparty-registry/src/utils/config"
	l "github.com/decentraland/thirdparty-registry/src/utils/logger"
	"github.com/decentraland/thirdparty-registry/src/utils/model/sql_migrations"

	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewGormLogger() logger.Interface {
	return logger.New(l.L(),
		logger.Config{
			SlowThreshold:             500 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Error,           // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  false,                  // Disable color
		},
	)
}

func Connect(ctx context.Context, dbConfig *config.Database, username, password, applicationName string) (self *gorm.DB, err error) {
	log := l.NewSublogger("db")

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s application_name=%s/third-party-registry",
		dbConfig.Host,
		dbConfig.Port,
		username,
		password,
		dbConfig.Name,
		dbConfig.SslMode,
		applicationName,
	)

	if dbConfig.ClientKey != "" && dbConfig.ClientCert != "" && dbConfig.CaCert != "" {
		log.Info("Using SSL certificates from variables")

		var keyFile, certFile, caFile *os.File
		keyFile, err = os.CreateTemp("", "key.pem")
		if err != nil {
			return
		}
		defer os.Remove(keyFile.Name())
		_, err = keyFile.WriteString(dbConfig.ClientKey)
		if err != nil {
			return
		}

		certFile, err = os.CreateTemp("", "cert.pem")
		if err != nil {
			return
		}
		defer os.Remove(certFile.Name())
		_, err = certFile.WriteString(dbConfig.ClientCert)
		if err != nil {
			return
		}

		caFile, err = os.CreateTemp("", "ca.pem")
		if err != nil {
			return
		}
		defer os.Remove(caFile.Name())
		_, err = caFile.WriteString(dbConfig.CaCert)
		if err != nil {
			return
		}

		dsn += fmt.Sprintf(" sslcert=%s sslkey=%s sslrootcert=%s", certFile.Name(), keyFile.Name(), caFile.Name())
	}

	self, err = gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: NewGormLogger()})
	if err != nil {
		return
	}

	db, err := self.DB()
	if err != nil {
		return
	}

	db.SetMaxOpenConns(dbConfig.MaxOpenConns)
	db.SetMaxIdleConns(dbConfig.MaxIdleConns)
	db.SetConnMaxIdleTime(dbConfig.ConnMaxIdleTime)
	db.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	err = ping(ctx, dbConfig, self)
	if err != nil {
		return
	}

	return
}

func NewConnection(ctx context.Context, config *config.Config, applicationName string) (self *gorm.DB, err error) {
	err = Migrate(ctx, config)
	if err != nil {
		return
	}

	return Connect(ctx, &config.Database, config.Database.User, config.Database.Password, applicationName)
}

func Migrate(ctx context.Context, config *config.Config) (err error) {
	log := l.NewSublogger("db-migrate")

	if config.Database.MigrationUser == "" || config.Database.MigrationPassword == "" {
		log.Info("Migration user not set, skipping migrations")
		return
	}

	// Run migrations
	migrations := &migrate.HttpFileSystemMigrationSource{
		FileSystem: http.FS(sql_migrations.FS),
	}

	// Use special migration user
	self, err := Connect(ctx, &config.Database, config.Database.MigrationUser, config.Database.MigrationPassword, "migration")
	if err != nil {
		return
	}

	db, err := self.DB()
	if err != nil {
		return
	}
	defer db.Close()

	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return
	}

	log.WithField("num", n).Info("Applied migrations")

	config.Database.MigrationUser = ""
	config.Database.MigrationPassword = ""

	return
}

// Schema from the model definitions, used with databases the migrations aren't written for
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Settings{},
		&ThirdParty{},
		&ThirdPartyManager{},
		&ThirdPartyRule{},
		&Item{},
		&ProcessedMessage{},
		&Event{},
	)
}

func Ping(ctx context.Context, dbConfig *config.Database, db *gorm.DB) (err error) {
	return ping(ctx, dbConfig, db)
}

func ping(ctx context.Context, dbConfig *config.Database, db *gorm.DB) (err error) {
	if dbConfig.PingTimeout < 0 {
		// Ping disabled
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbConfig.PingTimeout)
	defer cancel()

	err = sqlDB.PingContext(dbCtx)
	if err != nil {
		return
	}
	return
}
