package admin

import (
	"fmt"
	"strings"

	"sar-ambalaj-backend/internal/audit"
	"sar-ambalaj-backend/internal/auth"
	"sar-ambalaj-backend/internal/database"
	"sar-ambalaj-backend/internal/models"
	"sar-ambalaj-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type CreateUserRequest struct {
	Username string          `json:"username" validate:"required,min=3,max=100"`
	Name     string          `json:"name" validate:"required,max=100"`
	Password string          `json:"password" validate:"required,min=6"`
	Role     models.UserRole `json:"role" validate:"required,oneof=admin operator"`
}

type UpdateUserRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Password *string          `json:"password" validate:"omitempty,min=6"`
	Role     *models.UserRole `json:"role" validate:"omitempty,oneof=admin operator"`
}

func adminCount() int64 {
	var count int64
	database.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	return count
}

// GET /api/users
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("username asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar listelenemedi")
		}
		return c.JSON(users)
	}
}

// POST /api/users
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}
		username := auth.NormalizeUsername(body.Username)

		var count int64
		database.DB.Model(&models.User{}).Where("username = ?", username).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu kullanıcı adı zaten kullanılıyor")
		}

		hash, err := auth.HashPassword(body.Password)
		if err != nil {
			return err
		}

		user := models.User{
			Username:     username,
			Name:         strings.TrimSpace(body.Name),
			PasswordHash: hash,
			Role:         body.Role,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityUser,
			EntityID:    user.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Kullanıcı eklendi: %s (%s)", user.Username, user.Role),
			After:       user,
		})

		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// PUT /api/users/:id
func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ID(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		var body UpdateUserRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}

		before := user
		if body.Name != nil {
			user.Name = strings.TrimSpace(*body.Name)
		}
		if body.Role != nil && *body.Role != user.Role {
			if user.Role == models.RoleAdmin && adminCount() <= 1 {
				return fiber.NewError(fiber.StatusConflict, "Son admin kullanıcının rolü değiştirilemez")
			}
			user.Role = *body.Role
		}
		if body.Password != nil {
			hash, err := auth.HashPassword(*body.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı güncellenemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityUser,
			EntityID:    user.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Kullanıcı güncellendi: %s", user.Username),
			Before:      before,
			After:       user,
		})

		return c.JSON(user)
	}
}

// DELETE /api/users/:id
func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ID(c)
		if err != nil {
			return err
		}

		if self, ok := c.Locals(auth.CtxUserIDKey).(uint); ok && self == id {
			return fiber.NewError(fiber.StatusConflict, "Kendi hesabınızı silemezsiniz")
		}

		var user models.User
		if err := database.DB.First(&user, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}
		if user.Role == models.RoleAdmin && adminCount() <= 1 {
			return fiber.NewError(fiber.StatusConflict, "Son admin kullanıcı silinemez")
		}

		if err := database.DB.Delete(&models.User{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı silinemedi")
		}

		audit.Record(c, audit.LogOptions{
			EntityType:  audit.EntityUser,
			EntityID:    user.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Kullanıcı silindi: %s", user.Username),
			Before:      user,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
