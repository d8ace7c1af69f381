package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RankingConfig configures the optional external ranking collaborator.
type RankingConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	URL            string `mapstructure:"url"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type Config struct {
	Seed int `mapstructure:"seed"`

	// Business rules
	DiscountRate        float64 `mapstructure:"discount_rate"` // pay 30%, i.e. 70% off
	SurpriseBagMinItems int     `mapstructure:"surprise_bag_min_items"`
	SurpriseBagMaxItems int     `mapstructure:"surprise_bag_max_items"`
	MaxSuggestions      int     `mapstructure:"max_suggestions"`
	RankingWindowSize   int     `mapstructure:"ranking_window_size"`

	// Scoring weights
	PreferenceScoreWeight int     `mapstructure:"preference_score_weight"`
	DietaryMatchScore     int     `mapstructure:"dietary_match_score"`
	UrgentExpiryHours     float64 `mapstructure:"urgent_expiry_hours"`
	UrgentExpiryScore     int     `mapstructure:"urgent_expiry_score"`
	NormalExpiryHours     float64 `mapstructure:"normal_expiry_hours"`
	NormalExpiryScore     int     `mapstructure:"normal_expiry_score"`

	// Demo dataset sizing
	DemoHalls        int `mapstructure:"demo_halls"`
	DemoItemsPerHall int `mapstructure:"demo_items_per_hall"`
	DemoUsers        int `mapstructure:"demo_users"`

	// Outputs
	KafkaEnabled      bool               `mapstructure:"kafka_enabled"`
	KafkaBrokerList   string             `mapstructure:"kafka_broker_list"`
	OutputFile        string             `mapstructure:"output_file_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	OutputFormat      string             `mapstructure:"output_format"` // json or parquet
	OutputDestination string             `mapstructure:"output_destination"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`

	// Persistence snapshot
	PostgresEnabled bool           `mapstructure:"postgres_enabled"`
	Database        DatabaseConfig `mapstructure:"database"`

	Ranking RankingConfig `mapstructure:"ranking"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// a missing config file is fine, defaults and flags cover everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("discount_rate", 0.3)
	viper.SetDefault("surprise_bag_min_items", 3)
	viper.SetDefault("surprise_bag_max_items", 5)
	viper.SetDefault("max_suggestions", 12)
	viper.SetDefault("ranking_window_size", 20)

	viper.SetDefault("preference_score_weight", 2)
	viper.SetDefault("dietary_match_score", 10)
	viper.SetDefault("urgent_expiry_hours", 4.0)
	viper.SetDefault("urgent_expiry_score", 15)
	viper.SetDefault("normal_expiry_hours", 8.0)
	viper.SetDefault("normal_expiry_score", 10)

	viper.SetDefault("demo_halls", 3)
	viper.SetDefault("demo_items_per_hall", 6)
	viper.SetDefault("demo_users", 5)

	viper.SetDefault("output_format", "json")
	viper.SetDefault("output_destination", "local")
	viper.SetDefault("ranking.timeout_seconds", 30)
}
