package database

import (
	"fmt"

	"renhold/config"

	"github.com/valkey-io/valkey-go"
)

// Valkey database index organization. Each index provides logical separation
// for one cache category.
const (
	// GENERAL_CACHE_INDEX (DB 0) - general purpose caching
	GENERAL_CACHE_INDEX = iota

	// SESSION_CACHE_INDEX (DB 1) - auth sessions keyed by token ID
	SESSION_CACHE_INDEX

	// USER_CACHE_INDEX (DB 2) - user profiles and role sets
	USER_CACHE_INDEX

	// EVENTS_CACHE_INDEX (DB 3) - pub/sub change notifications
	EVENTS_CACHE_INDEX
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		return log.Error("failed to initialize cache database: address or port is empty")
	}

	initAddress := []string{fmt.Sprintf("%s:%d", address, port)}

	var cacheDB Cache
	var err error

	cacheDB.General, err = valkey.NewClient(valkey.ClientOption{
		InitAddress: initAddress,
		SelectDB:    GENERAL_CACHE_INDEX,
	})
	if err != nil {
		return log.Err("failed to create general cache client", err)
	}

	cacheDB.Session, err = valkey.NewClient(valkey.ClientOption{
		InitAddress: initAddress,
		SelectDB:    SESSION_CACHE_INDEX,
	})
	if err != nil {
		return log.Err("failed to create session cache client", err)
	}

	cacheDB.User, err = valkey.NewClient(valkey.ClientOption{
		InitAddress: initAddress,
		SelectDB:    USER_CACHE_INDEX,
	})
	if err != nil {
		return log.Err("failed to create user cache client", err)
	}

	cacheDB.Events, err = valkey.NewClient(valkey.ClientOption{
		InitAddress: initAddress,
		SelectDB:    EVENTS_CACHE_INDEX,
	})
	if err != nil {
		return log.Err("failed to create events cache client", err)
	}

	s.Cache = cacheDB
	log.Info("Cache database initialized")

	return nil
}
