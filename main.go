package main

import (
	"github.com/shivesh2334-ai/ECG-LEVEL-4/config"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/route"
)

func main() {
	config.SetupAll()

	e := route.NewHandler()

	e.Logger.Fatal(e.Start(config.ServerConfig().Port))
}
