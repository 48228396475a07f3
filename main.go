package main

import (
	"github.com/coastlab/buoyspectra/cmd"
)

func main() {
	cmd.Execute()
}
