package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/parkdir"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Catalog parkdir.Catalog
	Nearby  parkdir.NearbyService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Cache   string        `help:"Cache location (default ~/.parkdir/cache.json, or cache.db with --store=sqlite)" env:"PARKDIR_CACHE"`
	Store   string        `help:"Cache backend" enum:"file,sqlite" default:"file" env:"PARKDIR_STORE"`
	APIKey  string        `name:"api-key" help:"MapQuest API key" env:"MAPQUEST_API_KEY"`
	Format  string        `help:"MapQuest response format" enum:"json,xml" default:"json"`
	Timeout time.Duration `help:"HTTP request timeout" default:"10s"`
	Rate    float64       `help:"Requests per second to each host (0 disables limiting)" default:"1"`
	Verbose bool          `short:"v" help:"Log requests and cache activity"`

	Regions RegionsCmd `cmd:"" help:"List all states in the directory"`
	Sites   SitesCmd   `cmd:"" help:"List national sites in a state"`
	Nearby  NearbyCmd  `cmd:"" help:"List places near a national site"`
	Browse  BrowseCmd  `cmd:"" default:"1" help:"Browse states and sites interactively"`
}

// RegionsCmd is the "regions" subcommand.
type RegionsCmd struct {
	URLs bool `help:"Show state page URLs"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct {
	State string `arg:"" help:"State name (e.g. Michigan)"`
}

// NearbyCmd is the "nearby" subcommand.
type NearbyCmd struct {
	State  string `arg:"" help:"State name (e.g. Michigan)"`
	Number int    `arg:"" help:"Site number as listed by 'parkdir sites'"`
	JSON   bool   `help:"Print the decoded search as JSON"`
}

// BrowseCmd is the "browse" subcommand.
type BrowseCmd struct{}
