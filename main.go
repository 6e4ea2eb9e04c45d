package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"calorieburn/cmd"
	"calorieburn/internal/apperr"
)

// Version is set at build time
var Version = "dev"

func main() {
	cmd.SetVersion(Version)
	if err := fang.Execute(context.Background(), cmd.GetRootCmd()); err != nil {
		if apperr.IsUser(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
