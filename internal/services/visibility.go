package services

import (
	"jobportal_backend/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// visibilityPredicate решает, видно ли уведомление пользователю в данной роли.
// Проверка soft delete и исключение собственных отправлений делаются снаружи,
// здесь только ролевое правило.
type visibilityPredicate func(n *models.Notification, userID primitive.ObjectID) bool

// receivedPredicates - таблица "роль -> правило входящих" вместо вложенных
// условий по ролям
var receivedPredicates = map[models.UserRole]visibilityPredicate{
	models.UserRoleStudent: func(n *models.Notification, userID primitive.ObjectID) bool {
		return n.HasRecipient(userID) ||
			n.RecipientType == models.RecipientAllStudents ||
			n.RecipientType == models.RecipientStudent
	},
	models.UserRoleCompany: func(n *models.Notification, userID primitive.ObjectID) bool {
		// Oversight: компании видят все уведомления, отправленные компаниями
		return n.HasRecipient(userID) ||
			n.RecipientType == models.RecipientAllCompanies ||
			(n.SenderRole == models.UserRoleCompany && n.Sender != userID)
	},
	models.UserRoleAdmin: func(n *models.Notification, userID primitive.ObjectID) bool {
		return n.HasRecipient(userID) ||
			n.RecipientType == models.RecipientAllAdmins ||
			n.RecipientType == models.RecipientAdmin ||
			(n.SenderRole == models.UserRoleAdmin && n.Sender != userID)
	},
}

// receivedVisible - полное правило входящих: не скрыто пользователем, не
// отправлено им самим и проходит ролевой предикат
func receivedVisible(n *models.Notification, userID primitive.ObjectID, role models.UserRole) bool {
	if n.IsDeletedBy(userID) || n.Sender == userID {
		return false
	}
	pred, ok := receivedPredicates[role]
	if !ok {
		return false
	}
	return pred(n, userID)
}

// sentVisible - правило "отправленных": все не скрытые пользователем
// уведомления его роли (oversight-лента; студенты не отправляют)
func sentVisible(n *models.Notification, userID primitive.ObjectID, role models.UserRole) bool {
	if role != models.UserRoleAdmin && role != models.UserRoleCompany {
		return false
	}
	if n.IsDeletedBy(userID) {
		return false
	}
	return n.SenderRole == role
}
