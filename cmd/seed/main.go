package main

import (
	"flag"
	"log"

	"github.com/louissosthenes9/campus-stay-api/internal"
)

func main() {
	var opts internal.SeedOptions
	flag.BoolVar(&opts.Amenities, "amenities", false, "seed the amenity catalogue")
	flag.BoolVar(&opts.Universities, "universities", false, "seed Tanzanian universities and their main campuses")
	flag.BoolVar(&opts.Clear, "clear", false, "delete existing rows before seeding")
	flag.Parse()

	if err := internal.RunSeed(opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
