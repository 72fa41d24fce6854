package main

import (
	"context"
	"log"
)

var version = "dev" // Set at build time via -ldflags "-X main.version=version"

func main() {
	log.SetFlags(0)
	if err := newRootCommand(version).ExecuteContext(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}
