// detectord — mock floor-plan detection service
//
// Serves the detection API contract the FloorTrace desktop client
// speaks, answering every request with a canned nine-room plan. Useful
// for development and demos while the real detection backend is
// offline.
//
// Build:
//   go build -o detectord ./cmd/detectord

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/obravim/floortrace/internal/detect"
)

func main() {
	port := flag.Int("port", defaultPort(), "port to listen on")
	flag.Parse()

	app := detect.NewMockApp()

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Starting mock detector on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// defaultPort honors the PORT environment variable when set.
func defaultPort() int {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			return p
		}
	}
	return 8421
}
