package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gridstore/gridstore/internal/config"
	"github.com/gridstore/gridstore/internal/logx"
	"github.com/gridstore/gridstore/internal/schema"
)

func main() {
	var (
		configPath = flag.String("config", "", "config file (YAML), empty for defaults")
		uri        = flag.String("uri", "", "array URI to inspect; empty lists all arrays")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	log := logx.NewLogger(cfg.LogLevel)

	ctx, err := schema.NewContext(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage context")
	}
	defer ctx.Close()

	if *uri == "" {
		uris, err := ctx.Backend().List()
		if err != nil {
			log.Fatal().Err(err).Msg("list arrays")
		}
		for _, u := range uris {
			fmt.Println(u)
		}
		return
	}

	s, err := schema.Load(ctx, *uri)
	if err != nil {
		// Load already reported through the context sink.
		os.Exit(1)
	}
	defer s.Close()

	out, err := s.Dump()
	if err != nil {
		log.Fatal().Err(err).Msg("dump schema")
	}
	fmt.Println(out)
}
