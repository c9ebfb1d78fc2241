package main

import (
	"gotierlist/pkg/config"
	"gotierlist/scheduler/jobs"
	"log"
)

// Load the env and just revalidate the entire champion cache.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	if err := jobs.RevalidateCache(cfg); err != nil {
		log.Fatalf("Couldn't revalidate the champion cache: %v", err)
	}
}
