package main // Entry point package

import (
    "log" // Logging library
    "os"  // Stdin/stdout streams and environment

    "github.com/joho/godotenv" // Loads .env files into the environment

    "github.com/gicinemas/seat-booking/internal/cli"
)

func main() {
    _ = godotenv.Load()

    base := os.Getenv("BOOKING_API_URL")
    if base == "" {
        base = "http://localhost:8080"
    }

    runner := cli.NewRunner(os.Stdin, os.Stdout, cli.NewClient(base))
    if err := runner.Run(); err != nil {
        log.Fatal(err)
    }
}
