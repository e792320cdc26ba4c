package main

import (
	"log"

	"github.com/louissosthenes9/campus-stay-api/internal"
)

func main() {
	worker, err := internal.NewMailWorker()
	if err != nil {
		log.Fatalf("Failed to initialize mail worker: %v", err)
	}

	if err := worker.Run(); err != nil {
		log.Fatalf("Mail worker run failed: %v", err)
	}
}
