package config

import "github.com/spf13/viper"

// Config holds all configuration for the application, loaded from an env
// file and overridable through environment variables.
type Config struct {
	ServerAddress    string `mapstructure:"SERVER_ADDRESS"`
	DBSource         string `mapstructure:"DB_SOURCE"`
	AddressSearchURL string `mapstructure:"ADDRESS_SEARCH_URL"`
	AddressSearchKey string `mapstructure:"ADDRESS_SEARCH_KEY"`
	GeocodingURL     string `mapstructure:"GEOCODING_URL"`
	GeocodingAppKey  string `mapstructure:"GEOCODING_APP_KEY"`
}

// LoadConfig reads configuration from app.env in the given path, letting
// environment variables of the same name take precedence.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
