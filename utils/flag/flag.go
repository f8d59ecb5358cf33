/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/

package flag

import (
	"flag"
)

const (
	FeedAPIServer = "feed_api"
)

var (
	IsDevelopment = flag.Bool("dev", true, "set to true if the current run is for development. default value is true")
	ServiceName   = flag.String("service", FeedAPIServer, "name this process reports as in logs and traces")
	ConfigPath    = flag.String("ranking_config", "", "optional path to a yaml file overriding ranking tuning values")
)

// Parse must run once from main before any flag value is read for real. It
// is deliberately not an init: test binaries register their own flags after
// package initialization and an early Parse would reject them.
func Parse() {
	flag.Parse()
}

// IsProdEnv is true when the flags indicate a production run.
func IsProdEnv() bool {
	return !*IsDevelopment
}
