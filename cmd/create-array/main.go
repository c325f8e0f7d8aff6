package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gridstore/gridstore/internal/config"
	"github.com/gridstore/gridstore/internal/logx"
	"github.com/gridstore/gridstore/internal/schema"
)

// parseDims parses "x:int64:0:99:10,y:int64:0:99:10" into dimensions.
func parseDims(s string) ([]schema.Dimension, error) {
	var dims []schema.Dimension
	for _, part := range strings.Split(s, ",") {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) != 5 {
			return nil, fmt.Errorf("dimension %q: want name:type:min:max:extent", part)
		}
		dt, err := schema.ParseDatatype(fields[1])
		if err != nil {
			return nil, fmt.Errorf("dimension %q: %w", part, err)
		}
		var nums [3]int64
		for i, f := range fields[2:] {
			nums[i], err = strconv.ParseInt(f, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("dimension %q: %w", part, err)
			}
		}
		dims = append(dims, schema.Dimension{
			Name: fields[0], Type: dt,
			Min: nums[0], Max: nums[1], Extent: nums[2],
		})
	}
	return dims, nil
}

// parseAttrs parses "value:float32:gzip:5,count:uint32:none:0".
func parseAttrs(s string) ([]schema.Attribute, error) {
	var attrs []schema.Attribute
	for _, part := range strings.Split(s, ",") {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) != 4 {
			return nil, fmt.Errorf("attribute %q: want name:type:compressor:level", part)
		}
		dt, err := schema.ParseDatatype(fields[1])
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", part, err)
		}
		kind, err := schema.ParseCompressorKind(fields[2])
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", part, err)
		}
		level, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", part, err)
		}
		attrs = append(attrs, schema.NewAttribute(fields[0], dt).
			WithCompressor(schema.Compressor{Kind: kind, Level: level}))
	}
	return attrs, nil
}

func parseCompressor(s string) (schema.Compressor, error) {
	name, levelStr, hasLevel := strings.Cut(s, ":")
	kind, err := schema.ParseCompressorKind(name)
	if err != nil {
		return schema.Compressor{}, err
	}
	level := 0
	if hasLevel {
		level, err = strconv.Atoi(levelStr)
		if err != nil {
			return schema.Compressor{}, err
		}
	}
	return schema.Compressor{Kind: kind, Level: level}, nil
}

func main() {
	var (
		configPath = flag.String("config", "", "config file (YAML), empty for defaults")
		uri        = flag.String("uri", "", "array URI to create")
		kindName   = flag.String("kind", "dense", "array kind: dense or sparse")
		capacity   = flag.Uint64("capacity", schema.DefaultCapacity, "cells per sparse data tile")
		tileOrder  = flag.String("tile-order", "row-major", "tile order: row-major or col-major")
		cellOrder  = flag.String("cell-order", "row-major", "cell order: row-major, col-major, or hilbert")
		coords     = flag.String("coords", "zstd", "coordinate compressor, e.g. zstd:3")
		offsets    = flag.String("offsets", "zstd", "offset compressor, e.g. gzip:5")
		dims       = flag.String("dims", "", "dimensions: name:type:min:max:extent[,...]")
		attrs      = flag.String("attrs", "", "attributes: name:type:compressor:level[,...]")
		kv         = flag.Bool("kv", false, "create with the key-value canonical shape")
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

	if *uri == "" {
		log.Fatal().Msg("-uri is required")
	}

	ctx, err := schema.NewContext(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage context")
	}
	defer ctx.Close()

	kind, err := schema.ParseArrayKind(*kindName)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -kind")
	}
	torder, err := schema.ParseLayout(*tileOrder)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -tile-order")
	}
	corder, err := schema.ParseLayout(*cellOrder)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -cell-order")
	}
	coordComp, err := parseCompressor(*coords)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -coords")
	}
	offsetComp, err := parseCompressor(*offsets)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -offsets")
	}

	s := schema.New(ctx).
		SetKind(kind).
		SetCapacity(*capacity).
		SetOrder(torder, corder).
		SetCoordCompressor(coordComp).
		SetOffsetCompressor(offsetComp)
	defer s.Close()

	if *kv {
		s.SetKV()
	} else {
		if *dims == "" {
			log.Fatal().Msg("-dims is required unless -kv is set")
		}
		dimensions, err := parseDims(*dims)
		if err != nil {
			log.Fatal().Err(err).Msg("bad -dims")
		}
		s.SetDomain(schema.NewDomain(dimensions...))
	}

	if *attrs != "" {
		attributes, err := parseAttrs(*attrs)
		if err != nil {
			log.Fatal().Err(err).Msg("bad -attrs")
		}
		for _, a := range attributes {
			s.AddAttribute(a)
		}
	}

	if _, err := s.Create(*uri); err != nil {
		// Create already reported through the context sink.
		os.Exit(1)
	}
	out, err := s.Dump()
	if err != nil {
		log.Fatal().Err(err).Msg("dump schema")
	}
	log.Info().Str("uri", *uri).Msg("array created")
	fmt.Println(out)
}
