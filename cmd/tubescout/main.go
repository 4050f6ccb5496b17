package main

import (
	"tubescout/cmd/cmd"
	"tubescout/internal/logger"
)

func main() {
	logger.Init()
	cmd.Execute()
}
