package main

import (
	"github.com/MrSnakeDoc/devkit/cmd/devkit/cmd"
)

func main() {
	cmd.Execute()
}
