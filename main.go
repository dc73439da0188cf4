package main

import (
	"fmt"
	"log"
	"net/http"

	_ "go.uber.org/automaxprocs"

	"github.com/go-chi/chi/v5"
	"github.com/iqbalbaharum/pool-delegator/internal/adapter"
	"github.com/iqbalbaharum/pool-delegator/internal/config"
	"github.com/iqbalbaharum/pool-delegator/internal/engine"
	"github.com/iqbalbaharum/pool-delegator/internal/handler"
	"github.com/iqbalbaharum/pool-delegator/internal/registry"
	"github.com/iqbalbaharum/pool-delegator/internal/rpc"
	"github.com/iqbalbaharum/pool-delegator/internal/storage"
)

type Server struct {
	Router *chi.Mux
}

func CreateServer(commit *handler.CommitHandler) *Server {
	server := &Server{
		Router: handler.CreateRoutes(commit),
	}

	return server
}

const (
	PORT = 5000
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	err := config.InitEnv()
	if err != nil {
		log.Print(err)
		return
	}

	err = adapter.InitRedisClient(config.RedisAddr, config.RedisPassword)
	if err != nil {
		log.Fatalf("Failed to initialize Redis client: %v", err)
		return
	}

	err = adapter.InitMySQLClient(config.MySqlDsn, config.MySqlDbName)
	if err != nil {
		log.Fatalf("Failed to initialize SQL client: %v", err)
		return
	}

	log.Print("Initialized ENVIRONMENT successfully")

	mySqlClient, err := adapter.GetMySQLClient()
	if err != nil {
		panic(err)
	}

	storage.Init(mySqlClient)

	redisClient, err := adapter.GetRedisClient()
	if err != nil {
		panic(err)
	}

	rpcClient := rpc.NewClient(config.RpcHttpUrl)
	poolRegistry := registry.NewRegistry(config.RegistryUrl, redisClient)
	eng := engine.NewEngine(rpcClient, rpcClient)

	confirm, err := rpc.NewWsRpc()
	if err != nil {
		log.Printf("Confirmation listener unavailable: %v", err)
		confirm = nil
	}

	commitHandler := handler.NewCommitHandler(eng, rpcClient, poolRegistry, confirm)

	server := CreateServer(commitHandler)
	port := fmt.Sprintf(":%d", PORT)
	fmt.Printf("server running on port%s \n", port)

	if err := http.ListenAndServe(port, server.Router); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
