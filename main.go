/* main.go
 * The "main" method for running the putting league server. Configuration is
 * read from the environment, with a .env file loaded when present
 * Usage: go run main.go -addr=":8080"
 * Authors: Zachary Bower
 */

package main

import (
	"context"
	"flag"
	"os"

	"putting-league/announce"
	api "putting-league/api/api"
	"putting-league/web"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Flags
	addrPtr := flag.String("addr", "", "Listen address, e.g. :8080. Overrides the ADDR environment variable")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using the process environment")
	}

	addr := *addrPtr
	if addr == "" {
		addr = envOr("ADDR", ":8080")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required but none was provided")
	}

	apiPtr, err := api.NewAPI(envOr("DB_NAME", "putting_league"), envOr("MONGO_URI", "mongodb://localhost:27017"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize API")
	}
	defer func() {
		if err := apiPtr.Store.GetClient().Disconnect(context.TODO()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongo")
		}
	}()

	srv := web.NewServer(web.Config{
		Addr:         addr,
		API:          apiPtr,
		JWTSecret:    jwtSecret,
		AllowOrigins: splitOrigins(os.Getenv("CORS_ORIGINS")),
		Logger:       log,
	})

	// Committed mutations reach the live hub, and the Discord channel when a
	// bot token is configured
	notifiers := api.MultiNotifier{srv.Hub()}
	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		announcer, err := announce.NewAnnouncer(token, os.Getenv("DISCORD_CHANNEL_ID"), log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize announcer")
		}
		if err := announcer.Open(); err != nil {
			log.Warn().Err(err).Msg("discord connection failed, announcements are off")
		} else {
			defer announcer.Close()
			notifiers = append(notifiers, announcer)
		}
	}
	apiPtr.Notify = notifiers

	if err := apiPtr.EnsureBootstrapAdmin(context.Background(), os.Getenv("BOOTSTRAP_ADMIN_USERNAME"), os.Getenv("BOOTSTRAP_ADMIN_PASSWORD")); err != nil {
		log.Fatal().Err(err).Msg("failed to seed the bootstrap admin")
	}

	log.Info().Str("addr", addr).Msg("putting league server starting")
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
