package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/smart-reviewer/internal/logging"
	"github.com/localnerve/smart-reviewer/internal/testutil"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a development database container with the environment variables from the .env file.
The mapped host and port are printed; point DB_HOST and DB_PORT at them.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file (DB_TYPE, DB_IMAGE, DB_DATABASE, DB_USER, DB_PASSWORD)

example
  testcontainers -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	log := logging.New("info", "console", os.Stderr)

	if envFilename != "" {
		log.Info().Str("file", envFilename).Msg("loading environment variables")
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatal().Err(err).Msg("failed to load environment variables")
		}
	} else {
		log.Info().Msg("no environment file specified, using current environment variables")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	containers, err := testutil.StartDatabase(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create test containers")
	}
	log.Info().
		Str("db_type", containers.Config.DBType).
		Str("db_host", containers.Config.DBHost).
		Str("db_port", containers.Config.DBPort).
		Msg("database container started, Ctrl-C to stop")

	sig := <-sigs
	log.Info().Str("signal", sig.String()).Msg("terminating test containers")
	containers.Terminate(nil)
}
