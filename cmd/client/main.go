package main

import (
	"errors"
	"flag"
	"os"

	"github.com/treeforest/easyfill/internal/client"
	log "github.com/treeforest/logger"
)

func main() {
	node := flag.String("node", "http://127.0.0.1:8080", "node http address")
	debug := flag.Bool("debug", false, "debug log")
	flag.Parse()

	if *debug {
		log.SetLevel(log.DEBUG)
	}

	if err := client.New(*node, os.Stdout).Run(flag.Args()); err != nil {
		if errors.Is(err, client.ErrUsage) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}
