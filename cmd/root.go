package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/campuskitchen/surplusmart/internal/ingest"
	"github.com/campuskitchen/surplusmart/internal/marketplace"
	"github.com/campuskitchen/surplusmart/internal/models"
	"github.com/campuskitchen/surplusmart/internal/output"
	"github.com/campuskitchen/surplusmart/internal/ranking"
	"github.com/campuskitchen/surplusmart/internal/repositories"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	dataFile string
)

var rootCmd = &cobra.Command{
	Use:   "surplusmart",
	Short: "Campus surplus-food marketplace engine",
	Long:  `surplusmart matches students with discounted surplus food from campus dining halls: it tracks expiring inventory, learns user preferences from ratings, and builds surprise bags and custom orders before the food goes to waste.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		run(cfg)
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data-file", "", "ingestion snapshot to load instead of demo data")

	rootCmd.Flags().Int("seed", 42, "Random seed for bag sampling and demo data")
	rootCmd.Flags().Int("demo-halls", 3, "Number of dining halls in the demo dataset")
	rootCmd.Flags().Int("demo-users", 5, "Number of generated demo users")
	rootCmd.Flags().Bool("kafka-enabled", false, "Publish activity events to Kafka")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().String("output-file", "", "Activity event output path (if not using Kafka)")
	rootCmd.Flags().String("output-format", "json", "Activity event file format (json or parquet)")
	rootCmd.Flags().Bool("postgres-enabled", false, "Persist a marketplace snapshot to Postgres on shutdown")
	rootCmd.Flags().Bool("ranking-enabled", false, "Delegate suggestion ordering to the external ranking service")
	rootCmd.Flags().String("ranking-url", "", "Ranking service base URL")

	viper.BindPFlag("seed", rootCmd.Flags().Lookup("seed"))
	viper.BindPFlag("demo_halls", rootCmd.Flags().Lookup("demo-halls"))
	viper.BindPFlag("demo_users", rootCmd.Flags().Lookup("demo-users"))
	viper.BindPFlag("kafka_enabled", rootCmd.Flags().Lookup("kafka-enabled"))
	viper.BindPFlag("kafka_broker_list", rootCmd.Flags().Lookup("kafka-broker-list"))
	viper.BindPFlag("output_file_path", rootCmd.Flags().Lookup("output-file"))
	viper.BindPFlag("output_format", rootCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("postgres_enabled", rootCmd.Flags().Lookup("postgres-enabled"))
	viper.BindPFlag("ranking.enabled", rootCmd.Flags().Lookup("ranking-enabled"))
	viper.BindPFlag("ranking.url", rootCmd.Flags().Lookup("ranking-url"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("examples")
		viper.SetConfigType("json")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func run(cfg *models.Config) {
	ctx := context.Background()

	market := marketplace.New(cfg)

	events := output.MustDetermine(cfg)
	defer func() {
		if err := events.Close(); err != nil {
			log.Printf("Error closing output destination: %v", err)
		}
	}()
	market.Events = events

	if cfg.Ranking.Enabled {
		client := ranking.NewClient(cfg.Ranking)
		market.Impact = client
		market.Recommender = marketplace.NewRankedRecommender(
			client,
			marketplace.NewLocalRecommender(market.Scorer, cfg.MaxSuggestions),
			market.Scorer,
			cfg.RankingWindowSize,
			client.Timeout(),
		)
		log.Printf("External ranking enabled: %s", cfg.Ranking.URL)
	}

	var source ingest.Source
	if dataFile != "" {
		source = &ingest.FileSource{Path: dataFile}
	}
	dataset := ingest.Load(ctx, source, cfg)
	market.ReplaceInventory(dataset.Halls, dataset.Items)

	runDemo(ctx, market, cfg)

	if cfg.PostgresEnabled {
		pool, err := repositories.NewPool(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		defer pool.Close()

		if err := repositories.NewPostgresSnapshotter(pool).Snapshot(ctx, market); err != nil {
			log.Fatalf("Failed to persist snapshot: %v", err)
		}
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
