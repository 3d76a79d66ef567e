package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Mongo        Mongo
	GeminiApiKey string
	JWTSecret    string
	UploadDir    string
}

type Server struct {
	Port string
}
type Mongo struct {
	URI    string
	DBName string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DBNAME", "ld_screening")
	viper.SetDefault("UPLOAD_DIR", "uploads")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Mongo.URI = viper.GetString("MONGO_URI")
	config.Mongo.DBName = viper.GetString("MONGO_DBNAME")
	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.JWTSecret = viper.GetString("JWT_SECRET")
	config.UploadDir = viper.GetString("UPLOAD_DIR")

	log.Info().Str("port", config.Server.Port).Str("db", config.Mongo.DBName).Msg("Config loaded")
	return &config, nil
}
