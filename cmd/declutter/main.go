package main

import (
	"github.com/MeKo-Tech/declutter/cmd/declutter/cmd"
)

func main() {
	cmd.Execute()
}
