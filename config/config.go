package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	defaultMongoURI      = "mongodb://localhost:27017/farm-inventory"
	defaultMongoDatabase = "farm-inventory"
)

// Config armazena todas as configurações da API de inventário.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string
	ServiceName string

	// Banco de Dados (MongoDB)
	MongoURI            string
	MongoDatabase       string
	MongoConnectTimeout time.Duration
	MongoSocketTimeout  time.Duration

	// Alertas de estoque baixo (Redis Pub/Sub). Vazio desativa.
	RedisAddr       string
	LowStockChannel string

	// Tracing (OTLP/HTTP). Vazio desativa.
	OTLPEndpoint string

	ShutdownTimeout time.Duration
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
// Nenhuma variável é obrigatória: o serviço precisa subir mesmo sem banco.
func LoadConfig() *Config {
	mongoURI := getEnv("MONGODB_URI", defaultMongoURI)

	cfg := &Config{
		Port:        getEnv("PORT", "5000"),
		Environment: getEnv("NODE_ENV", getEnv("APP_ENV", "development")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ServiceName: getEnv("SERVICE_NAME", "farm-inventory-api"),

		MongoURI:            mongoURI,
		MongoDatabase:       getEnv("MONGODB_DATABASE", databaseFromURI(mongoURI)),
		MongoConnectTimeout: getDurationEnv("MONGODB_CONNECT_TIMEOUT_MS", 5000) * time.Millisecond,
		MongoSocketTimeout:  getDurationEnv("MONGODB_SOCKET_TIMEOUT_MS", 45000) * time.Millisecond,

		RedisAddr:       getEnv("REDIS_ADDR", ""),
		LowStockChannel: getEnv("LOW_STOCK_CHANNEL", "inventory:low-stock"),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),

		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT_SEC", 15) * time.Second,
	}

	return cfg
}

// databaseFromURI extrai o nome do banco do path da connection string.
// URIs inválidas não derrubam a configuração: o erro aparece no bootstrap.
func databaseFromURI(uri string) string {
	cs, err := connstring.Parse(uri)
	if err != nil || cs.Database == "" {
		return defaultMongoDatabase
	}
	return cs.Database
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv lê uma variável numérica e retorna-a como time.Duration (sem unidade).
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil || value < 0 {
		log.Printf("Aviso: valor de %s ('%s') não é um inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
