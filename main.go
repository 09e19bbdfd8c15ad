package main

import (
	"log"

	"padmon/server"
)

func main() {
	system, err := server.NewSystem()
	if err != nil {
		log.Fatalln("system start failed;", err)
	}
	system.Start()
}
