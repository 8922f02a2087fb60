package models

type UserRole string
type RecipientType string
type NotificationType string
type JobType string
type ApplicationStatus string

const (
	UserRoleStudent UserRole = "student"
	UserRoleCompany UserRole = "company"
	UserRoleAdmin   UserRole = "admin"

	RecipientAllStudents       RecipientType = "all_students"
	RecipientSpecificStudents  RecipientType = "specific_students"
	RecipientAllCompanies      RecipientType = "all_companies"
	RecipientSpecificCompanies RecipientType = "specific_companies"
	RecipientAllAdmins         RecipientType = "all_admins"
	RecipientAdmin             RecipientType = "admin"
	RecipientStudent           RecipientType = "student"

	NotificationAnnouncement      NotificationType = "announcement"
	NotificationJobAlert          NotificationType = "job_alert"
	NotificationApproval          NotificationType = "approval"
	NotificationReminder          NotificationType = "reminder"
	NotificationSystem            NotificationType = "system"
	NotificationApplicationUpdate NotificationType = "application_update"

	JobTypeFullTime   JobType = "Full-time"
	JobTypeInternship JobType = "Internship"
	JobTypeContract   JobType = "Contract"

	ApplicationApplied     ApplicationStatus = "Applied"
	ApplicationShortlisted ApplicationStatus = "Shortlisted"
	ApplicationRejected    ApplicationStatus = "Rejected"
	ApplicationAccepted    ApplicationStatus = "Accepted"
)

// IsValid проверяет, что тип получателей один из перечисленных
func (rt RecipientType) IsValid() bool {
	switch rt {
	case RecipientAllStudents, RecipientSpecificStudents,
		RecipientAllCompanies, RecipientSpecificCompanies,
		RecipientAllAdmins, RecipientAdmin, RecipientStudent:
		return true
	}
	return false
}

// IsBroadcast - true для групповых типов (all_*), которые разворачиваются
// в снапшот получателей на момент отправки
func (rt RecipientType) IsBroadcast() bool {
	switch rt {
	case RecipientAllStudents, RecipientAllCompanies, RecipientAllAdmins:
		return true
	}
	return false
}

// BroadcastRole возвращает роль, которой адресован групповой тип
func (rt RecipientType) BroadcastRole() (UserRole, bool) {
	switch rt {
	case RecipientAllStudents:
		return UserRoleStudent, true
	case RecipientAllCompanies:
		return UserRoleCompany, true
	case RecipientAllAdmins:
		return UserRoleAdmin, true
	}
	return "", false
}

func (nt NotificationType) IsValid() bool {
	switch nt {
	case NotificationAnnouncement, NotificationJobAlert, NotificationApproval,
		NotificationReminder, NotificationSystem, NotificationApplicationUpdate:
		return true
	}
	return false
}

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationApplied, ApplicationShortlisted, ApplicationRejected, ApplicationAccepted:
		return true
	}
	return false
}
