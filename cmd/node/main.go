package main

import (
	"flag"
	"time"

	fill "github.com/treeforest/easyfill"
	"github.com/treeforest/easyfill/config"
	"github.com/treeforest/easyfill/dao"
	"github.com/treeforest/easyfill/pkg/graceful"
	log "github.com/treeforest/logger"
)

var confPath = flag.String("conf", "config.yaml", "node config path (.yaml or .toml)")

func main() {
	flag.Parse()

	conf, err := config.Load(*confPath)
	if err != nil {
		log.Fatal("load config failed: ", err)
	}
	if conf.Debug {
		log.SetLevel(log.DEBUG)
	}
	data, _ := conf.Marshal()
	log.Info("config:\n", string(data))

	store, err := dao.New(conf.DBPath)
	if err != nil {
		log.Fatal("open template store failed: ", err)
	}
	templates := fill.NewTemplates(store, conf.Placeholder)

	server := fill.NewHttpServer(conf.HttpServerPort, templates)
	go func() {
		if err := server.Run(); err != nil {
			log.Fatal("http server run failed: ", err)
		}
	}()

	timeout := time.Duration(conf.ShutdownTimeout) * time.Second
	if err = graceful.StopWithTimeout(timeout, server.Shutdown); err != nil {
		log.Warn("http server shutdown: ", err)
	}
	if err = store.Close(); err != nil {
		log.Warn("close template store: ", err)
	}
	log.Info("graceful stopped")
}
