package main

import (
	"flag"
	"log"

	_ "github.com/kferran/go-spiral-tracer/pkg/integrator" // Register integrators
	_ "github.com/kferran/go-spiral-tracer/pkg/sampler"    // Register samplers
	"github.com/kferran/go-spiral-tracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to run the web server on")
	flag.Parse()

	srv := server.NewServer(*port, nil)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
