package config

func LoadTestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8081,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Name:     "trainhub_test",
			User:     "test_user",
			Password: "test_password",
		},
		Auth: AuthConfig{
			LoginPath:        "/login",
			UnauthorizedPath: "/unauthorized",
		},
		Passcode: PasscodeConfig{
			CodeLength:  6,
			ExpiryHours: 24,
			MaxPerHour:  5,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		},
	}
}
