package main

import (
	"flag"
	"os"

	fill "github.com/treeforest/easyfill"
	"github.com/treeforest/easyfill/script"
	log "github.com/treeforest/logger"
)

func main() {
	dbPath := flag.String("db", ".", "template database path")
	placeholder := flag.Uint("placeholder", script.OP_PLACEHOLDER, "placeholder opcode")
	debug := flag.Bool("debug", false, "debug log")
	flag.Parse()

	if *debug {
		log.SetLevel(log.DEBUG)
	}
	if *placeholder > 0xff {
		log.Fatalf("invalid placeholder opcode %d", *placeholder)
	}
	if err := script.CheckPlaceholder(byte(*placeholder)); err != nil {
		log.Fatal(err)
	}

	cmd := fill.NewCommand(*dbPath, byte(*placeholder), os.Stdout)
	if err := cmd.Run(flag.Args()); err != nil {
		if err == fill.ErrUsage {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}
