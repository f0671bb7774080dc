package config

import (
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// lookup converts the value at key with conv, or returns def when the key is
// not set anywhere (file, environment or default).
func lookup[T any](v *viper.Viper, key string, def T, conv func(any) T) T {
	if !v.IsSet(key) {
		return def
	}
	return conv(v.Get(key))
}

func getDurationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	return lookup(v, key, def, cast.ToDuration)
}

func getUint32OrDefault(v *viper.Viper, key string, def uint32) uint32 {
	return lookup(v, key, def, cast.ToUint32)
}

func getIntOrDefault(v *viper.Viper, key string, def int) int {
	return lookup(v, key, def, cast.ToInt)
}

func getFloat64OrDefault(v *viper.Viper, key string, def float64) float64 {
	return lookup(v, key, def, cast.ToFloat64)
}

func getStringOrDefault(v *viper.Viper, key string, def string) string {
	return lookup(v, key, def, cast.ToString)
}
