package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type HTTP struct {
	Addr              string        `default:":8080" envconfig:"ADDR"`
	GinMode           string        `default:"debug" envconfig:"GIN_MODE"`
	ReadTimeout       time.Duration `default:"10s" envconfig:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `default:"10s" envconfig:"WRITE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT"`
	HandlerTimeout    time.Duration `default:"3s" envconfig:"HANDLER_TIMEOUT"`
	GracefulTimeout   time.Duration `default:"5s" envconfig:"GRACEFUL_TIMEOUT"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"imagelib" envconfig:"OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"OTEL_SAMPLE_RATIO"`
}

// Cache — границы TTL-кэшей (общие для всех доменов).
type Cache struct {
	TTL        time.Duration `default:"5m" envconfig:"TTL"`
	MaxEntries int           `default:"10" envconfig:"MAX_ENTRIES"`
}

// Remote — удалённые сервисы библиотеки (единый базовый URL).
type Remote struct {
	BaseURL          string        `default:"http://localhost:9000" envconfig:"BASE_URL"`
	Timeout          time.Duration `default:"15s" envconfig:"TIMEOUT"`
	AuthToken        string        `default:"" envconfig:"AUTH_TOKEN"`
	DeleteRetries    int           `default:"2" envconfig:"DELETE_RETRIES"`
	RetryDelay       time.Duration `default:"1s" envconfig:"RETRY_DELAY"`
	ManualRetryCount int           `default:"3" envconfig:"MANUAL_RETRY_COUNT"`
}

// Store — локальное долговременное хранилище.
type Store struct {
	Path string `default:"imagelib.db" envconfig:"PATH"`
}

type Config struct {
	HTTP    HTTP
	Logger  Logger
	Tracing Tracing
	Cache   Cache
	Remote  Remote
	Store   Store
}

func Load() (*Config, error) {
	return LoadWithPrefix("IMAGELIB")
}

// LoadWithPrefix — загрузка с произвольным префиксом переменных окружения
// (в тестах каждый сценарий живёт под своим префиксом).
func LoadWithPrefix(prefix string) (*Config, error) {
	var c Config
	if err := envconfig.Process(prefix, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
