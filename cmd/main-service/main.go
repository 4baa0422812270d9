package main

import (
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/server"
)

// Explore With Me main service: categories, users, events, participation
// requests, compilations and ratings.
func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
