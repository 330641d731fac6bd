package main

import (
	"context"
	"os"

	"github.com/rryowa/bookstore/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background()))
}
