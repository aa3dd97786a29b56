package main

import (
	_ "net/http/pprof"

	"protmc/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
