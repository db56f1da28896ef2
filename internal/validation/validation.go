package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// Hata haritasında Go alan adı yerine json adı görünsün
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// FieldError, doğrulama hatasını alan bazında taşır. ErrorHandler bu tipi
// {"error": ..., "fields": {...}} biçiminde döner.
type FieldError struct {
	Fields map[string]string
}

func (e *FieldError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, tag := range e.Fields {
		parts = append(parts, f+":"+tag)
	}
	return "doğrulama hatası: " + strings.Join(parts, ", ")
}

func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
	}
	fields := make(map[string]string, len(verrs))
	for _, ve := range verrs {
		fields[ve.Field()] = ve.Tag()
	}
	return &FieldError{Fields: fields}
}

// ParseBody istek gövdesini çözer ve doğrular.
func ParseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
	}
	return Struct(out)
}

const DateLayout = "2006-01-02"

// Date "YYYY-MM-DD" biçimindeki tarihi çözer.
func Date(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
	}
	return d, nil
}

// DateRange from/to query parametrelerini uygular. Boş olanlar atlanır.
func DateRange(c *fiber.Ctx, dbq *gorm.DB) (*gorm.DB, error) {
	if from := c.Query("from"); from != "" {
		d, err := Date(from)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "from geçersiz")
		}
		dbq = dbq.Where("date >= ?", d)
	}
	if to := c.Query("to"); to != "" {
		d, err := Date(to)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "to geçersiz")
		}
		dbq = dbq.Where("date <= ?", d)
	}
	return dbq, nil
}

func ID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz ID")
	}
	return uint(id), nil
}
