package config

import (
	"github.com/spf13/viper"
)

// Logger logger config struct
type Logger struct {
	Level      string `json:"level" yaml:"level"`
	Format     string `json:"format" yaml:"format" validate:"omitempty,oneof=json text"`
	Output     string `json:"output" yaml:"output" validate:"omitempty,oneof=stdout stderr file"`
	OutputFile string `json:"output_file" yaml:"output_file" validate:"required_if=Output file"`
}

func getLoggerConfig(v *viper.Viper) *Logger {
	return &Logger{
		Level:      v.GetString("logger.level"),
		Format:     v.GetString("logger.format"),
		Output:     v.GetString("logger.output"),
		OutputFile: v.GetString("logger.output_file"),
	}
}
