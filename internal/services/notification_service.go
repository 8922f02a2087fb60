package services

import (
	"context"
	"fmt"
	"time"

	"jobportal_backend/internal/email"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ---------------- Интерфейсы ----------------

// RoleDirectory отвечает на единственный вопрос движка рассылки:
// "кто сейчас состоит в роли X" и "кто эти конкретные пользователи".
// Реализуется UserRepository.
type RoleDirectory interface {
	FindByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
}

type NotificationService interface {
	Send(ctx context.Context, senderID primitive.ObjectID, senderRole models.UserRole, req *dto.SendNotificationRequest) (*dto.NotificationResponse, error)
	ListVisible(ctx context.Context, userID primitive.ObjectID, role models.UserRole) (*dto.NotificationFeedResponse, error)
	ToggleRead(ctx context.Context, notificationID string, userID primitive.ObjectID) (*dto.ToggleReadResponse, error)
	SoftDelete(ctx context.Context, notificationID string, userID primitive.ObjectID) error
	HardDelete(ctx context.Context, notificationID string) error

	// Системные фабрики: уведомления, которые порождают другие модули
	NotifyApplicationStatus(ctx context.Context, job *models.Job, student *models.User, status models.ApplicationStatus) error
	NotifyCompanyApproved(ctx context.Context, adminID primitive.ObjectID, company *models.User) error
}

type notificationServiceImpl struct {
	repo      repositories.NotificationRepository
	directory RoleDirectory
	mailer    email.Dispatcher
}

func NewNotificationService(repo repositories.NotificationRepository, directory RoleDirectory, mailer email.Dispatcher) NotificationService {
	return &notificationServiceImpl{
		repo:      repo,
		directory: directory,
		mailer:    mailer,
	}
}

// ---------------- Права отправителя ----------------

// allowedRecipientTypes - матрица "роль отправителя -> допустимые типы
// получателей". Студенты не отправляют вовсе (их нет в карте).
var allowedRecipientTypes = map[models.UserRole]map[models.RecipientType]bool{
	models.UserRoleAdmin: {
		models.RecipientAllStudents:       true,
		models.RecipientSpecificStudents:  true,
		models.RecipientAllCompanies:      true,
		models.RecipientSpecificCompanies: true,
		models.RecipientAllAdmins:         true,
		models.RecipientAdmin:             true,
		models.RecipientStudent:           true,
	},
	models.UserRoleCompany: {
		models.RecipientAllStudents:      true,
		models.RecipientSpecificStudents: true,
		models.RecipientStudent:          true,
		models.RecipientAdmin:            true,
	},
}

// ---------------- Отправка ----------------

func (s *notificationServiceImpl) Send(ctx context.Context, senderID primitive.ObjectID, senderRole models.UserRole, req *dto.SendNotificationRequest) (*dto.NotificationResponse, error) {
	recipientType := models.RecipientType(req.RecipientType)

	if !allowedRecipientTypes[senderRole][recipientType] {
		return nil, apperrors.ErrRecipientTypeNotAllowed
	}

	notificationType := models.NotificationType(req.Type)
	if notificationType == "" {
		notificationType = models.NotificationAnnouncement
	}

	// Список получателей фиксируется в момент отправки: broadcast-типы
	// разворачиваются в текущий состав роли, пользователи созданные позже
	// это уведомление не получат
	var recipientUsers []models.User
	var recipients []primitive.ObjectID
	var err error

	if role, ok := recipientType.BroadcastRole(); ok {
		recipientUsers, err = s.directory.FindByRole(ctx, role)
		if err != nil {
			return nil, apperrors.InternalError(fmt.Errorf("failed to expand recipients: %w", err))
		}
		recipients = make([]primitive.ObjectID, 0, len(recipientUsers))
		for _, u := range recipientUsers {
			recipients = append(recipients, u.ID)
		}
	} else {
		if len(req.RecipientIDs) == 0 {
			return nil, apperrors.ErrInvalidOperation("notification", "Recipient ids are required for this recipient type")
		}
		recipients, err = parseRecipientIDs(req.RecipientIDs)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid recipient id: " + err.Error())
		}
		// Получателей храним как передали (с дедупликацией), без проверки
		// существования - несуществующий id просто никому не виден
		recipientUsers, err = s.directory.FindByIDs(ctx, recipients)
		if err != nil {
			return nil, apperrors.InternalError(fmt.Errorf("failed to load recipients: %w", err))
		}
	}

	notification := &models.Notification{
		Sender:        senderID,
		SenderRole:    senderRole,
		RecipientType: recipientType,
		Recipients:    recipients,
		Title:         req.Title,
		Message:       req.Message,
		Type:          notificationType,
	}

	if err := s.repo.Insert(ctx, notification); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "notification sent",
		"notification_id", notification.ID.Hex(),
		"recipient_type", string(recipientType),
		"recipients", len(recipients),
	)

	if req.SendEmail {
		go s.dispatchEmails(recipientUsers, req.Title, req.Message)
	}

	return toNotificationResponse(notification, senderID), nil
}

func parseRecipientIDs(raw []string) ([]primitive.ObjectID, error) {
	seen := make(map[primitive.ObjectID]bool, len(raw))
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, r := range raw {
		id, err := primitive.ObjectIDFromHex(r)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid id", r)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// dispatchEmails рассылает письма лучшими усилиями: ошибка доставки не
// влияет на уже сохраненное уведомление и только логируется.
func (s *notificationServiceImpl) dispatchEmails(users []models.User, subject, body string) {
	for _, u := range users {
		if u.Email == "" {
			continue
		}
		err := s.mailer.Send(u.Email, subject, body)
		logger.MailLog(u.Email, subject, err)
	}
}

// ---------------- Ленты ----------------

func (s *notificationServiceImpl) ListVisible(ctx context.Context, userID primitive.ObjectID, role models.UserRole) (*dto.NotificationFeedResponse, error) {
	candidates, err := s.repo.FindVisibleCandidates(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	feed := &dto.NotificationFeedResponse{
		Received: []*dto.NotificationResponse{},
		Sent:     []*dto.NotificationResponse{},
	}

	for i := range candidates {
		n := &candidates[i]
		if receivedVisible(n, userID, role) {
			feed.Received = append(feed.Received, toNotificationResponse(n, userID))
		}
		if sentVisible(n, userID, role) {
			feed.Sent = append(feed.Sent, toNotificationResponse(n, userID))
		}
	}

	return feed, nil
}

// ---------------- Прочтение ----------------

// ToggleRead переключает персональную отметку прочтения. Операция обратна
// самой себе: два вызова подряд возвращают уведомление в исходное состояние.
func (s *notificationServiceImpl) ToggleRead(ctx context.Context, notificationID string, userID primitive.ObjectID) (*dto.ToggleReadResponse, error) {
	id, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return nil, apperrors.ErrNotificationNotFound(err)
	}

	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return nil, apperrors.ErrNotificationNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if notification.IsReadBy(userID) {
		if err := s.repo.RemoveReadReceipt(ctx, id, userID); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return &dto.ToggleReadResponse{IsRead: false}, nil
	}

	if err := s.repo.AddReadReceipt(ctx, id, userID, time.Now()); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.ToggleReadResponse{IsRead: true}, nil
}

// ---------------- Удаление ----------------

// SoftDelete скрывает уведомление только для этого пользователя. Отметка
// постоянная, пути восстановления нет.
func (s *notificationServiceImpl) SoftDelete(ctx context.Context, notificationID string, userID primitive.ObjectID) error {
	id, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return apperrors.ErrNotificationNotFound(err)
	}

	if err := s.repo.MarkDeletedBy(ctx, id, userID); err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// HardDelete удаляет документ для всех. Только для админов (проверка роли
// на уровне маршрута).
func (s *notificationServiceImpl) HardDelete(ctx context.Context, notificationID string) error {
	id, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return apperrors.ErrNotificationNotFound(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	logger.CtxWarn(ctx, "notification hard-deleted", "notification_id", notificationID)
	return nil
}

// ---------------- Системные уведомления ----------------

var applicationStatusMessages = map[models.ApplicationStatus]string{
	models.ApplicationShortlisted: "Good news! Your application for %q has been shortlisted by %s.",
	models.ApplicationAccepted:    "Congratulations! Your application for %q has been accepted by %s.",
	models.ApplicationRejected:    "Your application for %q was not selected by %s this time.",
}

// NotifyApplicationStatus создает персональное уведомление студенту о смене
// статуса его отклика. Отправителем выступает компания вакансии.
func (s *notificationServiceImpl) NotifyApplicationStatus(ctx context.Context, job *models.Job, student *models.User, status models.ApplicationStatus) error {
	tmpl, ok := applicationStatusMessages[status]
	if !ok {
		tmpl = "The status of your application for %q at %s has changed."
	}

	notification := &models.Notification{
		Sender:        job.Company,
		SenderRole:    models.UserRoleCompany,
		RecipientType: models.RecipientStudent,
		Recipients:    []primitive.ObjectID{student.ID},
		Title:         "Application update: " + job.Title,
		Message:       fmt.Sprintf(tmpl, job.Title, job.CompanyName),
		Type:          models.NotificationApplicationUpdate,
	}

	if err := s.repo.Insert(ctx, notification); err != nil {
		return apperrors.InternalError(err)
	}

	go s.dispatchEmails([]models.User{*student}, notification.Title, notification.Message)
	return nil
}

// NotifyCompanyApproved создает персональное уведомление компании о том,
// что админ одобрил ее аккаунт.
func (s *notificationServiceImpl) NotifyCompanyApproved(ctx context.Context, adminID primitive.ObjectID, company *models.User) error {
	notification := &models.Notification{
		Sender:        adminID,
		SenderRole:    models.UserRoleAdmin,
		RecipientType: models.RecipientSpecificCompanies,
		Recipients:    []primitive.ObjectID{company.ID},
		Title:         "Your account has been approved",
		Message:       "Your company account has been approved. You can now post jobs and contact students.",
		Type:          models.NotificationApproval,
	}

	if err := s.repo.Insert(ctx, notification); err != nil {
		return apperrors.InternalError(err)
	}

	go s.dispatchEmails([]models.User{*company}, notification.Title, notification.Message)
	return nil
}

// ---------------- Маппинг ----------------

func toNotificationResponse(n *models.Notification, viewerID primitive.ObjectID) *dto.NotificationResponse {
	recipients := make([]string, 0, len(n.Recipients))
	for _, r := range n.Recipients {
		recipients = append(recipients, r.Hex())
	}

	return &dto.NotificationResponse{
		ID:            n.ID.Hex(),
		Sender:        n.Sender.Hex(),
		SenderRole:    n.SenderRole,
		RecipientType: n.RecipientType,
		Recipients:    recipients,
		Title:         n.Title,
		Message:       n.Message,
		Type:          n.Type,
		IsRead:        n.IsReadBy(viewerID),
		CreatedAt:     n.CreatedAt,
	}
}
