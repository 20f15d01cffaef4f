package configs

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/digitalpersonal/guarafood-app-sub001/repository"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {
	db.AutoMigrate(&repository.KVEntry{})
}
