package config

// RelayConfig holds configuration for the outbox relay service.
type RelayConfig struct {
	DatabaseURL string
	RabbitMQURL string
	QueueName   string
	LogLevel    string
	HealthAddr  string
}

func LoadRelayConfig() *RelayConfig {
	return &RelayConfig{
		DatabaseURL: mustGetenv("DB_CONNECTION_STRING"),
		RabbitMQURL: mustGetenv("RABBITMQ_URL"),
		QueueName:   getenv("VERIFICATION_QUEUE_NAME", "student-verifications"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		HealthAddr:  getenv("RELAY_HEALTH_ADDR", ":8090"),
	}
}
