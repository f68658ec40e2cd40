package main

import (
	"os"

	"github.com/swimfed-admin/swimfed-admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
