package configs

import (
	"strings"

	"restaurant/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the first admin account from ADMIN_* settings.
func SeedAdmin(database *gorm.DB, cfg *Config) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		logrus.Info("skip seeding admin: ADMIN_EMAIL/ADMIN_PASSWORD not set")
		return nil
	}

	var count int64
	if err := database.Model(&entity.User{}).
		Where("username = ? OR email = ?", cfg.AdminUsername, email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logrus.WithField("username", cfg.AdminUsername).Info("admin already exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Username:     cfg.AdminUsername,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
	}
	if err := database.Create(&admin).Error; err != nil {
		return err
	}
	logrus.WithField("username", admin.Username).Info("admin seeded")
	return nil
}
