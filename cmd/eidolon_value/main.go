package main

import (
	"flag"
	"os"

	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/app"
)

func main() {
	useExamples := flag.Bool("useExamples", false, "use the example config from input/eidolon_value/examples instead of eidolon_config.yaml")
	configPath := flag.String("config", "", "path to an eidolon_config.yaml (overrides -useExamples)")
	flag.Parse()
	os.Exit(app.RunWithOptions(app.Options{UseExamples: *useExamples, ConfigPath: *configPath}))
}
