package validator

import (
	"log"

	"jobportal_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Без этого правила приложение работать не должно
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'recipient-type': тип получателей из перечисления
	mustRegister("recipient-type", func(fl validator.FieldLevel) bool {
		return models.RecipientType(fl.Field().String()).IsValid()
	})

	// 'notification-type': категория уведомления; пустая строка допустима,
	// сервис подставит announcement
	mustRegister("notification-type", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		return models.NotificationType(s).IsValid()
	})

	// 'application-status': статус отклика
	mustRegister("application-status", func(fl validator.FieldLevel) bool {
		return models.ApplicationStatus(fl.Field().String()).IsValid()
	})
}
