package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	NotificationService NotificationService
	JobService          JobService
	ApplicationService  ApplicationService
	CompanyService      CompanyService
	AdminService        AdminService
}
