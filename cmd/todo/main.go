package main

import (
	"os"

	"github.com/idilsaglam/todo-sidebar/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
