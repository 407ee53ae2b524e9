package db

import (
	"log"
	"path"

	"github.com/boltdb/bolt"
)

var db *bolt.DB

func InitDB(confDir string) {
	var err error
	db, err = bolt.Open(path.Join(confDir, "bolt.db"), 0600, nil)
	if err != nil {
		log.Fatal(err)
	}
}

func DB() *bolt.DB {
	return db
}

func CloseDB() error {
	if db == nil {
		return nil
	}
	return db.Close()
}
