package main

import (
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/stats/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run stats server error", "error", err)
	}
}
