package config

import (
	"os"

	"github.com/ethereum/go-ethereum/common"
)

type Config struct {
	Addr     string
	LogLevel string
	TokenA   common.Address
	TokenB   common.Address
	DBPath   string
}

func FromEnv() (*Config, error) {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":1337"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	tokenA := os.Getenv("TOKEN_A")
	if tokenA == "" {
		return nil, ErrMissingTokenA
	}
	if !common.IsHexAddress(tokenA) {
		return nil, ErrInvalidTokenA
	}

	tokenB := os.Getenv("TOKEN_B")
	if tokenB == "" {
		return nil, ErrMissingTokenB
	}
	if !common.IsHexAddress(tokenB) {
		return nil, ErrInvalidTokenB
	}

	if common.HexToAddress(tokenA) == common.HexToAddress(tokenB) {
		return nil, ErrSameTokens
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = ":memory:"
	}

	cfg := &Config{
		Addr:     addr,
		LogLevel: logLevel,
		TokenA:   common.HexToAddress(tokenA),
		TokenB:   common.HexToAddress(tokenB),
		DBPath:   dbPath,
	}

	return cfg, nil
}
