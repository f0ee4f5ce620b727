package main

import (
	"os"

	"github.com/abhisek/recall/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
