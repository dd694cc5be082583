package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

var configCMD = &cli.Command{
	Name:  "config",
	Usage: "The config manage commands",
	Subcommands: []*cli.Command{
		{
			Name:   "generate",
			Usage:  "Generate default config",
			Action: generate,
		},
		{
			Name:   "show",
			Usage:  "Show the complete config processed by the environment variable",
			Action: show,
		},
		{
			Name:   "check",
			Usage:  "Check if the config file is valid",
			Action: check,
		},
	},
}

func fileExist(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func generate(ctx *cli.Context) error {
	p, err := getRootPath(ctx)
	if err != nil {
		return err
	}
	if fileExist(filepath.Join(p, repo.CfgFileName)) {
		fmt.Println("unbonding-ledger repo already exists")
		return nil
	}

	if !fileExist(p) {
		err = os.MkdirAll(p, 0755)
		if err != nil {
			return err
		}
	}

	r := repo.Default(p)
	if err := r.Flush(); err != nil {
		return err
	}
	fmt.Printf("config successfully generated in %s\n", p)
	return nil
}

func show(ctx *cli.Context) error {
	p, err := getRootPath(ctx)
	if err != nil {
		return err
	}
	if !fileExist(filepath.Join(p, repo.CfgFileName)) {
		fmt.Println("unbonding-ledger repo not exist")
		return nil
	}

	r, err := repo.Load(p)
	if err != nil {
		return err
	}
	str, err := repo.MarshalConfig(r.Config)
	if err != nil {
		return err
	}
	fmt.Println(str)
	return nil
}

func check(ctx *cli.Context) error {
	p, err := getRootPath(ctx)
	if err != nil {
		return err
	}
	if !fileExist(filepath.Join(p, repo.CfgFileName)) {
		fmt.Println("unbonding-ledger repo not exist")
		return nil
	}

	if _, err = repo.Load(p); err != nil {
		return fmt.Errorf("config file format error, please check: %w", err)
	}
	fmt.Println("config file is valid")
	return nil
}

func getRootPath(ctx *cli.Context) (string, error) {
	return repo.LoadRepoRootFromEnv(ctx.String("repo"))
}
