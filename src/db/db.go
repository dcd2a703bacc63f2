package db

import (
	"log"

	"ota/src/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

// GetDb returns the process-wide handle used by the HTTP glue. The core
// packages (ident, booking) never reach for this; they take an explicit
// *gorm.DB so they stay testable without the singleton.
func GetDb() *gorm.DB {
	if db != nil {
		return db
	}
	// TranslateError is required so duplicate-key violations surface as
	// gorm.ErrDuplicatedKey for the identifier retry loop.
	_db, err := gorm.Open(postgres.Open(config.GetDSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Printf("Error connecting to database: %s\n", err.Error())
		panic(err)
	}
	sqlDB, err := _db.DB()
	if err != nil {
		log.Fatalf("Error establishing connection to database: %s\n", err.Error())
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	db = _db
	return _db
}

func NewDB(newdb *gorm.DB) {
	db = newdb
}
