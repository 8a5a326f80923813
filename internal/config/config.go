package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ModelPath           string
	LabelsPath          string  // Plik z nazwami klas, jedna na linię (pusty = wbudowane nazwy)
	ModelInputSize      int     // Bok kwadratowego wejścia sieci
	ConfidenceThreshold float64 // Minimalna pewność kandydata przed NMS
	NMSThreshold        float64 // Próg IoU dla NMS niezależnego od klasy
	CaptureReadRetries  int     // Ile kolejnych nieudanych odczytów z kamery tolerujemy
	ZoneAnchor          string  // "center" albo "bottom_center"
	LogDirectory        string  // Pusty = logi tylko na konsolę
	LogLevel            string
}

// Load reads an optional .env file and builds the Config from the environment.
func Load() *Config {
	// .env is optional; a missing file leaves the process environment as is.
	_ = godotenv.Load()

	return &Config{
		ModelPath:           getEnv("MODEL_PATH", "best.onnx"),
		LabelsPath:          getEnv("LABELS_PATH", ""),
		ModelInputSize:      getEnvAsInt("MODEL_INPUT_SIZE", 640),
		ConfidenceThreshold: getEnvAsFloat("CONFIDENCE_THRESHOLD", 0.25),
		NMSThreshold:        getEnvAsFloat("NMS_THRESHOLD", 0.7),
		CaptureReadRetries:  getEnvAsInt("CAPTURE_READ_RETRIES", 5),
		ZoneAnchor:          getEnv("ZONE_ANCHOR", "center"),
		LogDirectory:        getEnv("LOG_DIR", ""),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
