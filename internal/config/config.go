package config

import (
	"log"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
)

var (
	// Authority program owning the pair_state delegate PDAs. The value must
	// match the deployed approval program exactly; a mismatch makes the
	// approve instruction target a non-existent account and the network
	// rejects the transaction at execution time.
	APPROVAL_PROGRAM = solana.MustPublicKeyFromBase58("8Eqa9Xis3Vo2KBRyV12kwMsjamU4ncNbU1QWED9yg7sQ")

	PAIR_STATE_SEED = "pair_state"

	TOKEN_ACCOUNT_SIZE = 165

	// Inventory paging: 10 records per page, at most 10 pages, balances at or
	// below the dust threshold are discarded.
	ASSET_PAGE_LIMIT = 10
	MAX_ASSET_PAGES  = 10
	DUST_THRESHOLD   = uint64(1)
)

var (
	Payer         *solana.Wallet
	RpcHttpUrl    string
	RpcWsUrl      string
	RegistryUrl   string
	RedisAddr     string
	RedisPassword string
	MySqlDsn      string
	MySqlDbName   string
)

func InitEnv() error {
	if err := godotenv.Load(); err != nil {
		log.Fatalf("Error loading .env file")
	}

	pay, e := solana.WalletFromPrivateKeyBase58(os.Getenv("PAYER_PRIVATE_KEY"))
	if e != nil {
		return e
	}

	Payer = pay

	RpcHttpUrl = os.Getenv("RPC_HTTP_URL")
	RpcWsUrl = os.Getenv("RPC_WS_URL")
	RegistryUrl = os.Getenv("REGISTRY_URL")
	RedisAddr = os.Getenv("REDIS_ADDR")
	RedisPassword = os.Getenv("REDIS_PASSWORD")
	MySqlDsn = os.Getenv("MYSQL_DSN")
	MySqlDbName = os.Getenv("MYSQL_DB_NAME")

	if MySqlDbName == "" {
		MySqlDbName = "pool_delegator"
	}

	return nil
}
