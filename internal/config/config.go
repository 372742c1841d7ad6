package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string   `env:"PORT" envDefault:"3000"`
		ReadTimeout     int      `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int      `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int      `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int      `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
		AllowedOrigins  []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
		MaxRequests     int      `env:"MAX_REQUESTS" envDefault:"20"` // 每个 IP 每秒最多请求数
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	Admin struct {
		Username string `env:"USERNAME" envDefault:"admin"`
		Password string `env:"PASSWORD,required"`
	} `envPrefix:"ADMIN_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"336"` // 单位为小时，14 天
		Secret     string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	Email struct {
		NotifyTo string `env:"NOTIFY_TO"` // 为空时不发送班次变更邮件
		SMTP     struct {
			Username    string `env:"USERNAME"`
			Password    string `env:"PASSWORD"`
			Host        string `env:"HOST"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host                string `env:"HOST" envDefault:"localhost"`
		Port                int    `env:"PORT" envDefault:"6379"`
		Password            string `env:"PASSWORD"`
		OperationExpiration int    `env:"OPERATION_EXPIRATION" envDefault:"10"` // 单位为秒
		CacheExpiration     int    `env:"CACHE_EXPIRATION" envDefault:"600"`    // 单位为秒
	} `envPrefix:"REDIS_"`
	Query struct {
		MaxEnumeratedShifts int `env:"MAX_ENUMERATED_SHIFTS" envDefault:"500"`
	} `envPrefix:"QUERY_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}
