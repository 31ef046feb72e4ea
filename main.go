package main

import (
	"os"

	"github.com/CryptoYield/CryptoYield/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
