package main

import "os"

// Config holds the demo's command-line/environment configuration,
// mirroring the teacher's provers/types.Config getEnv-then-flag-override
// pattern.
type Config struct {
	Message  string
	Basename string
}

func NewConfig(args ...string) *Config {
	config := Config{
		Message:  getEnv("EPID_MESSAGE", "hello from the member subsystem"),
		Basename: getEnv("EPID_BASENAME", ""),
	}

	for i := 0; i < len(args); i++ {
		if len(args) <= i+1 {
			break
		}
		switch args[i] {
		case "--message":
			config.Message = args[i+1]
			i++
		case "--basename":
			config.Basename = args[i+1]
			i++
		}
	}

	return &config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
