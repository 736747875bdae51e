package main

import (
	"github.com/SonaGutha/benchmarkingMemory-Storage/cmd/perfplot/cmd"
	"github.com/SonaGutha/benchmarkingMemory-Storage/internal/logging"
)

func main() {
	logging.ConfigureCommandLineLogging()
	cmd.Execute()
}
