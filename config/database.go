package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/ncobase/measure/ecode"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverInflux = "influx"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Database time-series storage config struct
type Database struct {
	Driver   string   `json:"driver" yaml:"driver" validate:"required,oneof=influx redis memory"`
	Host     string   `json:"host" yaml:"host" validate:"required_unless=Driver memory"`
	Port     int      `json:"port" yaml:"port" validate:"gte=0,lte=65535"`
	Username string   `json:"username" yaml:"username"`
	Password string   `json:"password" yaml:"password"`
	Name     string   `json:"name" yaml:"name" validate:"required_if=Driver influx"`
	Breaker  *Breaker `json:"breaker" yaml:"breaker"`
	Redis    *Redis   `json:"redis" yaml:"redis"`
}

// Breaker circuit breaker config struct
type Breaker struct {
	Enabled      bool          `json:"enabled" yaml:"enabled"`
	MaxRequests  uint32        `json:"max_requests" yaml:"max_requests"`
	Interval     time.Duration `json:"interval" yaml:"interval"`
	Timeout      time.Duration `json:"timeout" yaml:"timeout"`
	MinRequests  uint32        `json:"min_requests" yaml:"min_requests"`
	FailureRatio float64       `json:"failure_ratio" yaml:"failure_ratio" validate:"gte=0,lte=1"`
}

// Redis redis backend config struct
type Redis struct {
	Db        int           `json:"db" yaml:"db"`
	KeyPrefix string        `json:"key_prefix" yaml:"key_prefix"`
	Retention time.Duration `json:"retention" yaml:"retention"`
}

// Addr returns host:port.
func (d *Database) Addr() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}

// URL returns the HTTP endpoint of an InfluxDB server. A host that already
// carries a scheme is kept as is.
func (d *Database) URL() string {
	if strings.HasPrefix(d.Host, "http://") || strings.HasPrefix(d.Host, "https://") {
		return fmt.Sprintf("%s:%d", strings.TrimSuffix(d.Host, "/"), d.Port)
	}
	return "http://" + d.Addr()
}

// getDatabaseConfig reads the database section. The port may be written as
// a number or a numeral string.
func getDatabaseConfig(v *viper.Viper) (*Database, error) {
	port, err := cast.ToIntE(v.Get("database.port"))
	if err != nil {
		return nil, &ecode.ConfigError{Field: "database.port", Message: fmt.Sprintf("must be a number, got %q", v.GetString("database.port"))}
	}

	return &Database{
		Driver:   strings.ToLower(v.GetString("database.driver")),
		Host:     v.GetString("database.host"),
		Port:     port,
		Username: v.GetString("database.username"),
		Password: v.GetString("database.password"),
		Name:     v.GetString("database.name"),
		Breaker: &Breaker{
			Enabled:      v.GetBool("database.breaker.enabled"),
			MaxRequests:  getUint32OrDefault(v, "database.breaker.max_requests", 1),
			Interval:     getDurationOrDefault(v, "database.breaker.interval", time.Minute),
			Timeout:      getDurationOrDefault(v, "database.breaker.timeout", 30*time.Second),
			MinRequests:  getUint32OrDefault(v, "database.breaker.min_requests", 3),
			FailureRatio: getFloat64OrDefault(v, "database.breaker.failure_ratio", 0.6),
		},
		Redis: &Redis{
			Db:        v.GetInt("database.redis.db"),
			KeyPrefix: getStringOrDefault(v, "database.redis.key_prefix", "measure"),
			Retention: getDurationOrDefault(v, "database.redis.retention", 24*time.Hour),
		},
	}, nil
}
