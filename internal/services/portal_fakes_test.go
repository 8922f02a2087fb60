package services

import (
	"context"
	"sync"
	"time"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory реализации репозиториев портала для сервисных тестов.

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*models.User
}

func (r *fakeUserRepo) add(u models.User) primitive.ObjectID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.users = append(r.users, &u)
	return u.ID
}

func (r *fakeUserRepo) Insert(_ context.Context, u *models.User) error {
	r.add(*u)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByRole(_ context.Context, role models.UserRole) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.User{}
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	out := []models.User{}
	for _, u := range r.users {
		if set[u.ID] {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) SetApproved(_ context.Context, id primitive.ObjectID, approved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.IsApproved = approved
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	users, _ := r.FindByRole(ctx, role)
	return int64(len(users)), nil
}

func (r *fakeUserRepo) CountByRoleSince(_ context.Context, role models.UserRole, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.Role == role && !u.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs []*models.Job
}

func (r *fakeJobRepo) Insert(_ context.Context, j *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j.ID.IsZero() {
		j.ID = primitive.NewObjectID()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}
	clone := *j
	r.jobs = append(r.jobs, &clone)
	return nil
}

func (r *fakeJobRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.jobs {
		if j.ID == id {
			clone := *j
			return &clone, nil
		}
	}
	return nil, repositories.ErrJobNotFound
}

func (r *fakeJobRepo) FindAll(_ context.Context, companyID *primitive.ObjectID) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Job{}
	for _, j := range r.jobs {
		if companyID != nil && j.Company != *companyID {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

func (r *fakeJobRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	out := []models.Job{}
	for _, j := range r.jobs {
		if set[j.ID] {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) FindIDsByCompany(_ context.Context, companyID primitive.ObjectID) ([]primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := []primitive.ObjectID{}
	for _, j := range r.jobs {
		if j.Company == companyID {
			ids = append(ids, j.ID)
		}
	}
	return ids, nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, j := range r.jobs {
		if j.ID == id {
			r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
			return nil
		}
	}
	return repositories.ErrJobNotFound
}

func (r *fakeJobRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.jobs)), nil
}

func (r *fakeJobRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, j := range r.jobs {
		if !j.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeJobRepo) CountByCompany(_ context.Context, companyID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, j := range r.jobs {
		if j.Company == companyID {
			n++
		}
	}
	return n, nil
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps []*models.Application
}

func (r *fakeApplicationRepo) Insert(_ context.Context, a *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if a.Status == "" {
		a.Status = models.ApplicationApplied
	}
	clone := *a
	r.apps = append(r.apps, &clone)
	return nil
}

func (r *fakeApplicationRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.ID == id {
			clone := *a
			return &clone, nil
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r *fakeApplicationRepo) FindByStudent(_ context.Context, studentID primitive.ObjectID) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Application{}
	for _, a := range r.apps {
		if a.Student == studentID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) FindByJob(_ context.Context, jobID primitive.ObjectID) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Application{}
	for _, a := range r.apps {
		if a.Job == jobID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) FindByJobIDs(_ context.Context, jobIDs []primitive.ObjectID) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := make(map[primitive.ObjectID]bool, len(jobIDs))
	for _, id := range jobIDs {
		set[id] = true
	}
	out := []models.Application{}
	for _, a := range r.apps {
		if set[a.Job] {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) FindOneByJobAndStudent(_ context.Context, jobID, studentID primitive.ObjectID) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.Job == jobID && a.Student == studentID {
			clone := *a
			return &clone, nil
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.ID == id {
			a.Status = status
			return nil
		}
	}
	return repositories.ErrApplicationNotFound
}

func (r *fakeApplicationRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.apps)), nil
}

func (r *fakeApplicationRepo) CountByStatus(_ context.Context, status models.ApplicationStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.apps {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeApplicationRepo) CountByJobIDs(ctx context.Context, jobIDs []primitive.ObjectID) (int64, error) {
	apps, _ := r.FindByJobIDs(ctx, jobIDs)
	return int64(len(apps)), nil
}

func (r *fakeApplicationRepo) CountByJobIDsSince(ctx context.Context, jobIDs []primitive.ObjectID, since time.Time) (int64, error) {
	apps, _ := r.FindByJobIDs(ctx, jobIDs)
	var n int64
	for _, a := range apps {
		if !a.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// stubNotifier записывает вызовы системных фабрик уведомлений.
type stubNotifier struct {
	NotificationService

	mu              sync.Mutex
	statusCalls     []models.ApplicationStatus
	approvalTargets []primitive.ObjectID
}

func (s *stubNotifier) NotifyApplicationStatus(_ context.Context, _ *models.Job, _ *models.User, status models.ApplicationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusCalls = append(s.statusCalls, status)
	return nil
}

func (s *stubNotifier) NotifyCompanyApproved(_ context.Context, _ primitive.ObjectID, company *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.approvalTargets = append(s.approvalTargets, company.ID)
	return nil
}

func (s *stubNotifier) statuses() []models.ApplicationStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ApplicationStatus, len(s.statusCalls))
	copy(out, s.statusCalls)
	return out
}

func (s *stubNotifier) approvals() []primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]primitive.ObjectID, len(s.approvalTargets))
	copy(out, s.approvalTargets)
	return out
}
