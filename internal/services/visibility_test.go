package services

import (
	"testing"

	"jobportal_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestReceivedVisible(t *testing.T) {
	t.Parallel()

	student := primitive.NewObjectID()
	otherStudent := primitive.NewObjectID()
	company := primitive.NewObjectID()
	otherCompany := primitive.NewObjectID()
	admin := primitive.NewObjectID()
	otherAdmin := primitive.NewObjectID()

	tests := []struct {
		name         string
		notification models.Notification
		userID       primitive.ObjectID
		role         models.UserRole
		want         bool
	}{
		{
			name: "студент в снапшоте specific_students",
			notification: models.Notification{
				Sender: admin, SenderRole: models.UserRoleAdmin,
				RecipientType: models.RecipientSpecificStudents,
				Recipients:    []primitive.ObjectID{student},
			},
			userID: student, role: models.UserRoleStudent, want: true,
		},
		{
			name: "студент вне снапшота specific_students",
			notification: models.Notification{
				Sender: admin, SenderRole: models.UserRoleAdmin,
				RecipientType: models.RecipientSpecificStudents,
				Recipients:    []primitive.ObjectID{otherStudent},
			},
			userID: student, role: models.UserRoleStudent, want: false,
		},
		{
			name: "студент видит all_students даже вне списка",
			notification: models.Notification{
				Sender: company, SenderRole: models.UserRoleCompany,
				RecipientType: models.RecipientAllStudents,
				Recipients:    []primitive.ObjectID{otherStudent},
			},
			userID: student, role: models.UserRoleStudent, want: true,
		},
		{
			name: "студент не видит all_companies",
			notification: models.Notification{
				Sender: admin, SenderRole: models.UserRoleAdmin,
				RecipientType: models.RecipientAllCompanies,
				Recipients:    []primitive.ObjectID{company},
			},
			userID: student, role: models.UserRoleStudent, want: false,
		},
		{
			name: "студент не видит all_admins",
			notification: models.Notification{
				Sender: admin, SenderRole: models.UserRoleAdmin,
				RecipientType: models.RecipientAllAdmins,
				Recipients:    []primitive.ObjectID{otherAdmin},
			},
			userID: student, role: models.UserRoleStudent, want: false,
		},
		{
			name: "компания видит all_companies",
			notification: models.Notification{
				Sender: admin, SenderRole: models.UserRoleAdmin,
				RecipientType: models.RecipientAllCompanies,
				Recipients:    []primitive.ObjectID{company, otherCompany},
			},
			userID: company, role: models.UserRoleCompany, want: true,
		},
		{
			name: "компания видит чужое уведомление от компании (oversight)",
			notification: models.Notification{
				Sender: otherCompany, SenderRole: models.UserRoleCompany,
				RecipientType: models.RecipientAllStudents,
				Recipients:    []primitive.ObjectID{student},
			},
			userID: company, role: models.UserRoleCompany, want: true,
		},
		{
			name: "отправитель не видит собственное у себя во входящих",
			notification: models.Notification{
				Sender: company, SenderRole: models.UserRoleCompany,
				RecipientType: models.RecipientAllStudents,
				Recipients:    []primitive.ObjectID{student},
			},
			userID: company, role: models.UserRoleCompany, want: false,
		},
		{
			name: "админ видит all_admins",
			notification: models.Notification{
				Sender: otherAdmin, SenderRole: models.UserRoleAdmin,
				RecipientType: models.RecipientAllAdmins,
				Recipients:    []primitive.ObjectID{admin, otherAdmin},
			},
			userID: admin, role: models.UserRoleAdmin, want: true,
		},
		{
			name: "админ видит адресованное типу admin",
			notification: models.Notification{
				Sender: company, SenderRole: models.UserRoleCompany,
				RecipientType: models.RecipientAdmin,
				Recipients:    []primitive.ObjectID{admin},
			},
			userID: admin, role: models.UserRoleAdmin, want: true,
		},
		{
			name: "админ видит чужое уведомление от админа (oversight)",
			notification: models.Notification{
				Sender: otherAdmin, SenderRole: models.UserRoleAdmin,
				RecipientType: models.RecipientAllStudents,
				Recipients:    []primitive.ObjectID{student},
			},
			userID: admin, role: models.UserRoleAdmin, want: true,
		},
		{
			name: "скрытое пользователем не видно ни при каких условиях",
			notification: models.Notification{
				Sender: admin, SenderRole: models.UserRoleAdmin,
				RecipientType: models.RecipientAllStudents,
				Recipients:    []primitive.ObjectID{student},
				DeletedBy:     []primitive.ObjectID{student},
			},
			userID: student, role: models.UserRoleStudent, want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := receivedVisible(&tt.notification, tt.userID, tt.role)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSentVisible(t *testing.T) {
	t.Parallel()

	company := primitive.NewObjectID()
	otherCompany := primitive.NewObjectID()
	admin := primitive.NewObjectID()
	student := primitive.NewObjectID()

	fromCompany := models.Notification{
		Sender: otherCompany, SenderRole: models.UserRoleCompany,
		RecipientType: models.RecipientAllStudents,
	}
	fromAdmin := models.Notification{
		Sender: admin, SenderRole: models.UserRoleAdmin,
		RecipientType: models.RecipientAllStudents,
	}

	// Лента "отправленные" - все уведомления роли запрашивающего,
	// включая чужие
	assert.True(t, sentVisible(&fromCompany, company, models.UserRoleCompany))
	assert.False(t, sentVisible(&fromAdmin, company, models.UserRoleCompany))
	assert.True(t, sentVisible(&fromAdmin, admin, models.UserRoleAdmin))

	// У студентов ленты отправленных нет
	assert.False(t, sentVisible(&fromCompany, student, models.UserRoleStudent))

	// Скрытое пользователем пропадает и из отправленных
	hidden := fromCompany
	hidden.DeletedBy = []primitive.ObjectID{company}
	assert.False(t, sentVisible(&hidden, company, models.UserRoleCompany))
}
