package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	NotificationHandler *NotificationHandler
	JobHandler          *JobHandler
	ApplicationHandler  *ApplicationHandler
	CompanyHandler      *CompanyHandler
	AdminHandler        *AdminHandler
}
