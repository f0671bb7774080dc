// Package config loads the service configuration with Viper from YAML, JSON
// or TOML, with MEASURE_* environment overrides and hot reloading.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfig("./config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// With an empty path config.* is searched in /etc/measure, $HOME/.measure,
// the working directory and the executable's directory. Without any file
// the defaults and the environment apply.
//
// # Configuration Format
//
//	app_name: measure
//	run_mode: release
//	server:
//	  host: 0.0.0.0
//	  port: 8080
//	logger:
//	  level: info        # trace, debug, info, warn, error
//	  format: json       # json, text
//	  output: stdout     # stdout, stderr, file
//	database:
//	  driver: influx     # influx, redis, memory
//	  host: localhost
//	  port: "8086"       # number or numeral string
//	  username: admin
//	  password: secret
//	  name: collectd
//	  breaker:
//	    enabled: true
//	aggregate:
//	  max_concurrent: 0  # 0 = unbounded
//	write:
//	  workers: 4
//	  queue_size: 1024
//	ingest:
//	  kafka:
//	    brokers: [localhost:9092]
//	    topic: measurements
//	    group_id: measure
//	catalog:
//	  types:
//	    swap_free:
//	      table: swap_value
//	      type_instance: free
//	      derivation: byte_scale
//
// # Environment Variables
//
//	MEASURE_DATABASE_HOST=influx.internal
//	MEASURE_DATABASE_PORT=8086
//
// # Hot Reload
//
//	config.Watch(cfg, func(next *config.Config) {
//	    log.SetLevel(next.Logger.Level)
//	}, nil)
//
// Invalid configuration is reported as *ecode.ConfigError.
package config
