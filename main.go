package main

import (
	"os"

	rolewarden "github.com/hanseol/rolewarden/src"
)

func main() {
	os.Exit(rolewarden.Run(os.Args[1:]))
}
