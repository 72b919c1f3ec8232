package validator

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/FryoPie/Student-portal/internal/models"
)

func registerPortalRules(v *validator.Validate) {
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.Role(fl.Field().String()).Valid()
	})

	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, ok := models.CategoryLabels[models.AchievementCategory(fl.Field().String())]
		return ok
	})

	// Achievement dates travel as plain YYYY-MM-DD strings.
	_ = v.RegisterValidation("datestr", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := time.Parse("2006-01-02", s)
		return err == nil
	})
}
