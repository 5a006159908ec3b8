package database

import (
	"authoring_console_backend/internal/config"
	"authoring_console_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.QuestionBank{},
		&model.Question{},
		&model.Assessment{},
		&model.Rubric{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// every question needs a home; seed one bank on an empty install
	var count int64
	db.Model(&model.QuestionBank{}).Count(&count)
	if count == 0 {
		db.Create(&model.QuestionBank{
			Name:        "Default Question Bank",
			Description: "Questions created without an explicit bank land here.",
		})
	}

	return db, nil
}
