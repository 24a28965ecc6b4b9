package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

type config struct {
	Production            bool          `env:"PRODUCTION" envDefault:"false"`
	Port                  string        `env:"PORT" envDefault:"80"`
	PostgresUrl           string        `env:"POSTGRES_URL,required"`
	RedisUrl              string        `env:"REDIS_URL" envDefault:"redis:6379"`
	Timezone              string        `env:"TIMEZONE" envDefault:"Local"`
	TickInterval          time.Duration `env:"TICK_INTERVAL" envDefault:"1m"`
	NotificationType      string        `env:"NOTIFICATION_TYPE" envDefault:"notification"`
	SinkDriver            string        `env:"SINK_DRIVER" envDefault:"file"`
	LogDir                string        `env:"LOG_DIR" envDefault:"logs"`
	RedisSinkPrefix       string        `env:"REDIS_SINK_PREFIX" envDefault:"sink"`
	RetentionDays         int           `env:"RETENTION_DAYS" envDefault:"30"`
	RetentionSchedule     string        `env:"RETENTION_SCHEDULE" envDefault:"@daily"`
	MarkSentOnSinkFailure bool          `env:"MARK_SENT_ON_SINK_FAILURE" envDefault:"true"`
	TriggerRatePerMinute  int           `env:"TRIGGER_RATE_PER_MINUTE" envDefault:"6"`
}

var conf config

func init() {
	if err := env.Parse(&conf); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
}

func Production() bool {
	return conf.Production
}

func Port() string {
	return conf.Port
}

func PostgresURL() string {
	return conf.PostgresUrl
}

func RedisURL() string {
	return conf.RedisUrl
}

// Location resolves TIMEZONE. Calendar-day comparisons of the scheduler and
// the retention sweep are made in this location.
func Location() (*time.Location, error) {
	loc, err := time.LoadLocation(conf.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", conf.Timezone, err)
	}

	return loc, nil
}

func TickInterval() time.Duration {
	return conf.TickInterval
}

func NotificationType() string {
	return conf.NotificationType
}

func SinkDriver() string {
	return conf.SinkDriver
}

func LogDir() string {
	return conf.LogDir
}

func RedisSinkPrefix() string {
	return conf.RedisSinkPrefix
}

func RetentionDays() int {
	return conf.RetentionDays
}

func RetentionSchedule() string {
	return conf.RetentionSchedule
}

func MarkSentOnSinkFailure() bool {
	return conf.MarkSentOnSinkFailure
}

func TriggerRatePerMinute() int {
	return conf.TriggerRatePerMinute
}
