package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"rental-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "rental_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase ensures an admin account and, on a fresh install, a
// starter inventory so the storefront is not empty.
func SeedDatabase() {
	adminEmail := envOrDefault("ADMIN_EMAIL", "admin@rental.local")
	adminPassword := envOrDefault("ADMIN_PASSWORD", "admin123")

	var adminCount int64
	DB.Model(&models.Admin{}).Where("email = ?", adminEmail).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Email:    adminEmail,
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create admin: %v", err)
			} else {
				log.Printf("Seeded admin: %s", adminEmail)
			}
		}
	}

	var itemCount int64
	DB.Model(&models.Item{}).Count(&itemCount)
	if itemCount == 0 {
		items := []models.Item{
			{Name: "Chairs", Description: "Plastic chairs (white)", PricePerDay: 500, QuantityTotal: 200, IsActive: true, Category: "seating"},
			{Name: "Tables", Description: "Round/Rectangle tables", PricePerDay: 1500, QuantityTotal: 40, IsActive: true, Category: "seating"},
			{Name: "Canopy/Tent", Description: "Outdoor canopy tent", PricePerDay: 8000, QuantityTotal: 10, IsActive: true, Category: "shelter"},
		}
		if err := DB.Create(&items).Error; err != nil {
			log.Printf("warning: failed to seed inventory: %v", err)
		} else {
			log.Println("Seeded sample inventory")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// Parent tables before children.
	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.Item{},
		&models.Booking{},
		&models.BookingItem{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
