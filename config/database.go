package config

import (
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB opens the device-local sqlite store. A corrupt database file is
// moved aside and replaced with a fresh empty store instead of crashing.
func ConnectDB() {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "dipout.db"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Printf("Store at %s unreadable (%v), resetting to empty state", path, err)
		if renameErr := os.Rename(path, path+".corrupt"); renameErr != nil {
			os.Remove(path)
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			panic("Failed to open local store")
		}
	}

	DB = db
}
