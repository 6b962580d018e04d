package configuration

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		panic(err)
	}
	return c
})

func Use() *Configuration {
	return singleton()
}

type DatabaseOptions struct {
	Name     string `env:"DB_NAME" envDefault:"staffledger"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type ImportOptions struct {
	// RowTimeout bounds a single row's commit; expiry is reported as that
	// row's failure, not a batch abort.
	RowTimeout time.Duration `env:"IMPORT_ROW_TIMEOUT" envDefault:"30s"`
}

type Configuration struct {
	Database DatabaseOptions
	Import   ImportOptions

	Environment   string `env:"GO_APP_ENV" envDefault:"development"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:":8080"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	logger *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) load(envFiles []string) error {
	if _, err := LoadEnv(envFiles); err != nil {
		return err
	}
	if err := env.Parse(c); err != nil {
		return err
	}
	c.logger = newLogger(c.LogLevel, c.Environment)
	return nil
}

func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existingFiles = append(existingFiles, file)
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

func newLogger(level, environment string) *logrus.Logger {
	logger := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.Printf("invalid LOG_LEVEL %q, falling back to info", level)
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if environment == Production {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
