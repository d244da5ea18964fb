package models

import (
	"strings"

	"github.com/parceldesk/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultUser 初始化默认控制台用户
func InitDefaultUser(email, password string) error {
	var count int64
	DB.Model(&User{}).Count(&count)
	if count > 0 {
		return nil
	}

	email = strings.TrimSpace(email)
	if email == "" {
		email = "owner@localhost"
	}
	if password == "" {
		password = "parceldesk123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := DB.Create(&user).Error; err != nil {
		return err
	}

	if password == "parceldesk123" {
		logger.Warnw("default_user_created_with_default_password", "email", email)
		logger.Warnw("default_user_password_change_required", "email", email)
	} else {
		logger.Warnw("default_user_created", "email", email, "password_hidden", true)
	}
	return nil
}
