package main

import "time"

type Config struct {
	BadgerFilepath    string        `env:"BADGER_FILEPATH,default=./data/yazen"`
	LogLevel          string        `env:"LOG_LEVEL,default=WARN"`
	PageSize          int           `env:"PAGE_SIZE,default=25"`
	MaxMessageLength  int           `env:"MAX_MESSAGE_LENGTH,default=500"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
}
