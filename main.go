package main

import (
	"context"
	"encoding/json"
	"flag"
	"html/template"
	"net/http"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/yuhanfang/riot/constants/language"
	"github.com/yuhanfang/riot/staticdata"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"soloq-tracker/endpoints"
	"soloq-tracker/riot"
	"soloq-tracker/structs"
	"soloq-tracker/tracker"
)

type Config struct {
	RIOT_API_KEY        string
	DATABASE_DSN        string
	LISTEN_ADDR         string
	PLATFORM_HOST       string
	CLUSTER_HOST        string
	REQUESTS_PER_SECOND int
	MATCH_COUNT         int
}

// Custom errors
type ConfigError struct{}

func (e *ConfigError) Error() string {
	return "Default Config Created, please update it."
}

const (
	VERSION = "1.0.0"
)

var (
	config Config

	configPath = flag.String("config", "config.json", "Path to config file")
)

func createDefaults() {
	config = Config{
		RIOT_API_KEY:        "",
		DATABASE_DSN:        "host=localhost user=postgres password=postgres dbname=soloq port=5432 sslmode=disable",
		LISTEN_ADDR:         ":4000",
		PLATFORM_HOST:       "https://euw1.api.riotgames.com",
		CLUSTER_HOST:        "https://europe.api.riotgames.com",
		REQUESTS_PER_SECOND: 10,
		MATCH_COUNT:         5,
	}

	configStr, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		panic(err)
	}

	os.WriteFile(*configPath, configStr, 0644)
}

func loadConfig(log zerolog.Logger) error {
	log.Info().Str("path", *configPath).Msg("reading config")

	cfgFile, err := os.Open(*configPath)
	if err != nil {
		log.Warn().Msg("config file not found or readable, creating defaults")
		createDefaults()
		return &ConfigError{}
	}
	defer cfgFile.Close()

	if err := json.NewDecoder(cfgFile).Decode(&config); err != nil {
		log.Error().Err(err).Msg("error parsing config file")
		createDefaults()
		return &ConfigError{}
	}

	// .env / environment beats the config file for secrets
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using environment as-is")
	}
	if key := os.Getenv("RIOT_API_KEY"); key != "" {
		config.RIOT_API_KEY = key
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		config.DATABASE_DSN = dsn
	}

	log.Info().Msg("config loaded")
	return nil
}

// fetchChampions pulls the champion list from data dragon. A failure is
// tolerated: snapshots then record raw champion ids instead of names.
func fetchChampions(ctx context.Context, log zerolog.Logger) *staticdata.ChampionList {
	staticdataClient := staticdata.New(http.DefaultClient)

	versions, err := staticdataClient.Versions(ctx)
	if err != nil || len(versions) == 0 {
		log.Warn().Err(err).Msg("could not fetch data dragon versions")
		return nil
	}

	champions, err := staticdataClient.Champions(ctx, versions[0], language.EnglishUnitedStates)
	if err != nil {
		log.Warn().Err(err).Msg("could not fetch champion list")
		return nil
	}
	return champions
}

func main() {
	flag.Parse()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log.Info().Str("version", VERSION).Msg("soloq tracker")

	if err := loadConfig(log); err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if config.RIOT_API_KEY == "" {
		log.Fatal().Msg("RIOT_API_KEY is required")
	}

	db, err := gorm.Open(postgres.Open(config.DATABASE_DSN), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	// create the tables
	err = db.AutoMigrate(
		&structs.Player{},
		&structs.RecentMatch{},
		&structs.ActiveGame{},
		&structs.GameParticipant{},
		&structs.SummonerRankInfo{},
		&structs.SyncLog{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	ctx := context.Background()
	champions := fetchChampions(ctx, log)

	client := riot.NewClient(
		config.RIOT_API_KEY,
		config.PLATFORM_HOST,
		config.CLUSTER_HOST,
		config.REQUESTS_PER_SECOND,
		log.With().Str("component", "riot").Logger(),
	)

	trk := tracker.New(db, client, champions, config.MATCH_COUNT,
		log.With().Str("component", "tracker").Logger())

	engine := html.New("./views", ".html")
	engine.AddFunc("unescape", func(s string) template.HTML {
		return template.HTML(s)
	})

	app := fiber.New(fiber.Config{Views: engine})

	handler := endpoints.Handler{
		DB:      db,
		Tracker: trk,
		Client:  client,
		Log:     log.With().Str("component", "http").Logger(),
	}
	handler.Register(app)

	log.Info().Str("addr", config.LISTEN_ADDR).Msg("listening")
	if err := app.Listen(config.LISTEN_ADDR); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
