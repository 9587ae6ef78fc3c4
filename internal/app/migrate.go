package app

import (
	"errors"
	"os"
	"strings"
	"time"

	errorsUtils "github.com/Egor213/tidelogs/pkg/errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	log "github.com/sirupsen/logrus"
)

func withSSLMode(pgUrl string) string {
	if strings.Contains(pgUrl, "sslmode=") {
		return pgUrl
	}
	if strings.Contains(pgUrl, "?") {
		return pgUrl + "&sslmode=disable"
	}
	return pgUrl + "?sslmode=disable"
}

// Migrate applies pending migrations, retrying the connection like the pool does.
func Migrate(pgUrl, migrationsPath string, attempts int, timeout time.Duration) error {
	pgUrl = withSSLMode(pgUrl)
	log.Info("Running migrations")

	if _, err := os.Stat(migrationsPath); os.IsNotExist(err) {
		return errorsUtils.WrapPathErr(err)
	}

	var (
		err  error
		mgrt *migrate.Migrate
	)

	for attempts > 0 {
		mgrt, err = migrate.New("file://"+migrationsPath, pgUrl)
		if err == nil {
			break
		}

		attempts--
		log.Warnf("Postgres trying to connect, attempts left: %d", attempts)
		if attempts > 0 {
			time.Sleep(timeout)
		}
	}

	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	if mgrt == nil {
		return errorsUtils.WrapPathErr(errors.New("no connection attempts configured"))
	}
	defer mgrt.Close()

	err = mgrt.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("Migration no change")
		return nil
	}
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	log.Info("Migration successful up")
	return nil
}
