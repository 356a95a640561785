package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/stellarns/snsd"
	"github.com/stellarns/snsd/config"
)

func main() {
	app := &cli.App{
		Name: "snsd",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "horizon", Value: "https://horizon-testnet.stellar.org", Usage: "ledger query service url", EnvVars: []string{"HORIZON_URL"}},
			&cli.StringFlag{Name: "network", Value: "TESTNET", Usage: "network name or custom passphrase", EnvVars: []string{"STELLAR_NETWORK"}},
			&cli.StringFlag{Name: "registrar", Usage: "registrar account id", EnvVars: []string{"REGISTRAR_ACCOUNT"}},
			&cli.StringFlag{Name: "signer_key", Usage: "service signing secret seed", EnvVars: []string{"SIGNER_SECRET_KEY"}},
			&cli.Int64Flag{Name: "expiration", Value: 31536000, Usage: "domain expiration period in seconds", EnvVars: []string{"DOMAIN_EXPIRATION"}},

			&cli.StringFlag{Name: "db_dir", Value: "./data/bolt", Usage: "bolt db dir path", EnvVars: []string{"DB_DIR"}},
			&cli.StringFlag{Name: "mysql", Value: "root@tcp(127.0.0.1:3306)/snsd?charset=utf8mb4&parseTime=True&loc=Local", Usage: "mysql dsn", EnvVars: []string{"MYSQL"}},
			&cli.BoolFlag{Name: "sqlite", Value: false, Usage: "run with sqlite instead of mysql", EnvVars: []string{"SQLITE"}},
			&cli.StringFlag{Name: "sqlite_dir", Value: "./data/sqlite", Usage: "sqlite dir path", EnvVars: []string{"SQLITE_DIR"}},

			&cli.BoolFlag{Name: "s3_flag", Value: false, Usage: "archive envelopes to s3 instead of bolt", EnvVars: []string{"S3_FLAG"}},
			&cli.StringFlag{Name: "s3_acc_key", Usage: "s3 access key", EnvVars: []string{"S3_ACC_KEY"}},
			&cli.StringFlag{Name: "s3_secret_key", Usage: "s3 secret key", EnvVars: []string{"S3_SECRET_KEY"}},
			&cli.StringFlag{Name: "s3_prefix", Value: "snsd", Usage: "s3 bucket name prefix", EnvVars: []string{"S3_PREFIX"}},
			&cli.StringFlag{Name: "s3_region", Value: "ap-northeast-1", Usage: "s3 bucket region", EnvVars: []string{"S3_REGION"}},
			&cli.StringFlag{Name: "s3_endpoint", Usage: "custom s3 endpoint", EnvVars: []string{"S3_ENDPOINT"}},

			&cli.StringFlag{Name: "kafka_uri", Usage: "kafka broker uri, empty disables events", EnvVars: []string{"KAFKA_URI"}},
			&cli.StringFlag{Name: "port", Value: ":8080", EnvVars: []string{"PORT"}},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	cfg := config.New(
		c.String("horizon"),
		c.String("network"),
		c.String("registrar"),
		c.String("signer_key"),
		c.Int64("expiration"),
	)

	s := snsd.New(
		cfg,
		c.String("db_dir"), c.String("mysql"), c.String("sqlite_dir"), c.Bool("sqlite"),
		c.Bool("s3_flag"), c.String("s3_acc_key"), c.String("s3_secret_key"), c.String("s3_prefix"), c.String("s3_region"), c.String("s3_endpoint"),
		c.String("kafka_uri"),
	)
	s.Run(c.String("port"))

	<-signals
	s.Close()

	return nil
}
