package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

func main() {
	loadEnvFile()

	app := cli.NewApp()
	app.Name = repo.AppName
	app.Usage = "An epoch gated unbonding ledger: lock assets, unlock them into a cooldown queue and claim them once matured"
	app.Compiled = time.Now()

	cli.VersionPrinter = func(c *cli.Context) {
		printVersion(func(c string) {
			fmt.Println(c)
		})
	}

	// global flags
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "repo",
			Usage: "Work path",
		},
	}

	app.Commands = []*cli.Command{
		configCMD,
		ledgerCMD,
		epochCMD,
		{
			Name:   "start",
			Usage:  "Start a long-running daemon process",
			Action: start,
		},
		{
			Name:    "version",
			Aliases: []string{"v"},
			Usage:   "Show code version",
			Action: func(ctx *cli.Context) error {
				printVersion(func(c string) {
					fmt.Println(c)
				})
				return nil
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadEnvFile() {
	envFile := os.Getenv("UNBONDING_LEDGER_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Printf("load env file %s failed: %s\n", envFile, err)
			return
		}
	}
}

func printVersion(writer func(c string)) {
	writer(fmt.Sprintf("%s version: %s-%s-%s", repo.AppName, repo.BuildVersion, repo.BuildBranch, repo.BuildCommit))
	writer(fmt.Sprintf("App build date: %s", repo.BuildDate))
	writer(fmt.Sprintf("System version: %s", repo.Platform))
	writer(fmt.Sprintf("Golang version: %s", repo.GoVersion))
}
