package main

import (
	"fmt"
	"time"
)

type Config struct {
	Host                 string        `env:"HOST,default=localhost"`
	Port                 int           `env:"PORT,default=8080" validate:"gte=1,lte=65535"`
	DefaultRoom          string        `env:"DEFAULT_ROOM,default=chatroom" validate:"required"`
	HistoryCapacity      int           `env:"HISTORY_CAPACITY,default=1000" validate:"gt=0"`
	BufferSize           int           `env:"BUFFER_SIZE,default=256" validate:"gt=0"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64" validate:"gt=0"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	CensoredWords        string        `env:"CENSORED_WORDS"`
	CharReplacement      string        `env:"CHARACTER_REPLACEMENT,default=*"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=30s"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=200ms"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
