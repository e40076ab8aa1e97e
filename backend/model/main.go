package model

import (
	"campus-board/backend/common"

	"github.com/burugo/thing"
	redisCache "github.com/burugo/thing/drivers/cache/redis"
	"github.com/burugo/thing/drivers/db/sqlite"
)

// InitDB wires the Thing ORM to sqlite (plus the Redis cache when enabled),
// migrates the two tables and initializes the per-model ORM handles.
func InitDB() (err error) {
	dbAdapter, err := sqlite.NewSQLiteAdapter(common.SQLitePath)
	if err != nil {
		return err
	}
	var cacheClient thing.CacheClient = nil
	if common.RedisEnabled && common.RDB != nil {
		cacheClient, err = redisCache.NewClient(common.RDB, nil)
		if err != nil {
			return err
		}
	}
	thing.Configure(dbAdapter, cacheClient)

	err = thing.AutoMigrate(&Boarding{}, &School{})
	if err != nil {
		return err
	}

	if err := BoardingInit(); err != nil {
		return err
	}
	if err := SchoolInit(); err != nil {
		return err
	}
	return nil
}

func CloseDB() error {
	// Thing ORM keeps its own pool; nothing to close explicitly.
	return nil
}
