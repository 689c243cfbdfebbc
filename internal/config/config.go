package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Bus fault policies accepted by BUS_ERROR_POLICY.
const (
	BusPolicyHalt  = "halt"
	BusPolicyRetry = "retry"
)

// Config holds all application configuration values.
// Tilt thresholds are deliberately absent: they are fixed in internal/tilt.
type Config struct {
	// Accelerometer
	I2CBus     string // periph bus name, "" selects the first available bus
	MMAI2CAddr uint16

	// Indicator LED
	LEDRedPin    string
	LEDGreenPin  string
	LEDBluePin   string
	LEDActiveLow bool // reference board drives the LED channels low to light them

	// Timing
	ClassifyInterval int // milliseconds between filter/classifier ticks
	IdleTick         int // milliseconds the indicator stays dark when all levels are zero

	// Bus faults
	BusErrorPolicy     string
	BusRetryMaxBackoff int // milliseconds

	// Display
	DisplayEnabled        bool
	DisplayUpdateInterval int // milliseconds

	// Serial recorder
	SerialPort     string
	SerialBaudRate int
	StreamInterval int // milliseconds
	RecordSamples  int
	RecordInterval int // milliseconds
}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: only reachable through InitGlobal() and Get().
//   - configOnce: ensures InitGlobal() only runs once.
//   - configMu: write lock for initialization, read lock for Get().
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Default returns the configuration for the reference board.
func Default() *Config {
	return &Config{
		I2CBus:                "",
		MMAI2CAddr:            0x1D,
		LEDRedPin:             "GPIO17",
		LEDGreenPin:           "GPIO27",
		LEDBluePin:            "GPIO22",
		LEDActiveLow:          true,
		ClassifyInterval:      10,
		IdleTick:              100,
		BusErrorPolicy:        BusPolicyHalt,
		BusRetryMaxBackoff:    2000,
		DisplayEnabled:        false,
		DisplayUpdateInterval: 250,
		SerialPort:            "/dev/ttyGS0",
		SerialBaudRate:        9600,
		StreamInterval:        1000,
		RecordSamples:         400,
		RecordInterval:        10,
	}
}

// Load reads the configuration file on top of Default().
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := Default()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// Accelerometer
	case "I2C_BUS":
		c.I2CBus = value
	case "MMA_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid MMA_I2C_ADDR %q: %w", value, err)
		}
		if addr > 0x7F {
			return fmt.Errorf("MMA_I2C_ADDR must be a 7-bit address, got 0x%X", addr)
		}
		c.MMAI2CAddr = uint16(addr)

	// Indicator LED
	case "LED_RED_PIN":
		c.LEDRedPin = value
	case "LED_GREEN_PIN":
		c.LEDGreenPin = value
	case "LED_BLUE_PIN":
		c.LEDBluePin = value
	case "LED_ACTIVE_LOW":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid LED_ACTIVE_LOW %q: %w", value, err)
		}
		c.LEDActiveLow = b

	// Timing
	case "CLASSIFY_INTERVAL":
		interval, err := parseMillis("CLASSIFY_INTERVAL", value)
		if err != nil {
			return err
		}
		c.ClassifyInterval = interval
	case "IDLE_TICK":
		interval, err := parseMillis("IDLE_TICK", value)
		if err != nil {
			return err
		}
		c.IdleTick = interval

	// Bus faults
	case "BUS_ERROR_POLICY":
		switch value {
		case BusPolicyHalt, BusPolicyRetry:
			c.BusErrorPolicy = value
		default:
			return fmt.Errorf("BUS_ERROR_POLICY must be %q or %q, got %q", BusPolicyHalt, BusPolicyRetry, value)
		}
	case "BUS_RETRY_MAX_BACKOFF":
		interval, err := parseMillis("BUS_RETRY_MAX_BACKOFF", value)
		if err != nil {
			return err
		}
		c.BusRetryMaxBackoff = interval

	// Display
	case "DISPLAY_ENABLED":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_ENABLED %q: %w", value, err)
		}
		c.DisplayEnabled = b
	case "DISPLAY_UPDATE_INTERVAL":
		interval, err := parseMillis("DISPLAY_UPDATE_INTERVAL", value)
		if err != nil {
			return err
		}
		c.DisplayUpdateInterval = interval

	// Serial recorder
	case "SERIAL_PORT":
		c.SerialPort = value
	case "SERIAL_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SERIAL_BAUD_RATE %q: %w", value, err)
		}
		c.SerialBaudRate = rate
	case "STREAM_INTERVAL":
		interval, err := parseMillis("STREAM_INTERVAL", value)
		if err != nil {
			return err
		}
		c.StreamInterval = interval
	case "RECORD_SAMPLES":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid RECORD_SAMPLES %q: %w", value, err)
		}
		if n <= 0 || n > 10000 {
			return fmt.Errorf("RECORD_SAMPLES must be 1-10000, got %d", n)
		}
		c.RecordSamples = n
	case "RECORD_INTERVAL":
		interval, err := parseMillis("RECORD_INTERVAL", value)
		if err != nil {
			return err
		}
		c.RecordInterval = interval

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

func parseMillis(key, value string) (int, error) {
	ms, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if ms <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, ms)
	}
	return ms, nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.LEDRedPin == "" || c.LEDGreenPin == "" || c.LEDBluePin == "" {
		return fmt.Errorf("LED_RED_PIN, LED_GREEN_PIN and LED_BLUE_PIN are required")
	}
	if c.MMAI2CAddr == 0 {
		return fmt.Errorf("MMA_I2C_ADDR is required")
	}
	if c.SerialBaudRate <= 0 {
		return fmt.Errorf("SERIAL_BAUD_RATE must be positive")
	}
	return nil
}

// InitGlobal initializes the global configuration from file.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
