package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/staff"
	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/staff-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/spreadsheet"
	attendanceService "github.com/cmlabs-hris/staff-attendance-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/staff-attendance-go/internal/service/auth"
	reportService "github.com/cmlabs-hris/staff-attendance-go/internal/service/report"
	staffService "github.com/cmlabs-hris/staff-attendance-go/internal/service/staff"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

// memStore backs every repository fake so attendance reads can join staff like the database does.
type memStore struct {
	mu      sync.Mutex
	staff   map[string]staff.Staff
	records map[string]attendance.Attendance
	users   map[string]user.User
	tokens  map[string]bool // refresh token -> revoked
}

func newMemStore() *memStore {
	return &memStore{
		staff:   map[string]staff.Staff{},
		records: map[string]attendance.Attendance{},
		users:   map[string]user.User{},
		tokens:  map[string]bool{},
	}
}

func (m *memStore) joined(a attendance.Attendance) attendance.Attendance {
	for _, s := range m.staff {
		if s.StaffID == a.StaffID {
			name, dept := s.Name, string(s.Department)
			a.StaffName, a.StaffDepartment, a.StaffCabinNo = &name, &dept, s.CabinNo
			return a
		}
	}
	a.StaffName, a.StaffDepartment, a.StaffCabinNo = nil, nil, nil
	return a
}

type memStaffRepo struct{ *memStore }

func (r memStaffRepo) List(ctx context.Context, filter staff.StaffFilter) ([]staff.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []staff.Staff{}
	for _, s := range r.staff {
		if filter.Department != nil && string(s.Department) != *filter.Department {
			continue
		}
		if filter.Active != nil && s.Active != *filter.Active {
			continue
		}
		if filter.Search != nil && !strings.Contains(strings.ToLower(s.Name+" "+s.StaffID), strings.ToLower(*filter.Search)) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memStaffRepo) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.staff[id]
	if !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return s, nil
}

func (r memStaffRepo) GetByStaffID(ctx context.Context, staffID string) (staff.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.staff {
		if s.StaffID == staffID {
			return s, nil
		}
	}
	return staff.Staff{}, staff.ErrStaffNotFound
}

func (r memStaffRepo) ExistsByStaffID(ctx context.Context, staffID string) (bool, error) {
	_, err := r.GetByStaffID(ctx, staffID)
	return err == nil, nil
}

func (r memStaffRepo) Create(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.CreatedAt, s.UpdatedAt = time.Now(), time.Now()
	r.staff[s.ID] = s
	return s, nil
}

func (r memStaffRepo) Update(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.staff[s.ID]; !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	r.staff[s.ID] = s
	return s, nil
}

func (r memStaffRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.staff[id]; !ok {
		return staff.ErrStaffNotFound
	}
	delete(r.staff, id)
	return nil
}

func (r memStaffRepo) Departments(ctx context.Context) ([]staff.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[staff.Department]bool{}
	out := []staff.Department{}
	for _, s := range r.staff {
		if !seen[s.Department] {
			seen[s.Department] = true
			out = append(out, s.Department)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

type memAttendanceRepo struct{ *memStore }

func (r memAttendanceRepo) Find(ctx context.Context, q attendance.AttendanceQuery) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []attendance.Attendance{}
	for _, rec := range r.records {
		rec = r.joined(rec)
		if q.From != nil && rec.Date.Before(*q.From) {
			continue
		}
		if q.To != nil && rec.Date.After(*q.To) {
			continue
		}
		if q.StaffID != nil && rec.StaffID != *q.StaffID {
			continue
		}
		if q.Status != nil && rec.Status != *q.Status {
			continue
		}
		if q.Department != nil && (rec.StaffDepartment == nil || *rec.StaffDepartment != *q.Department) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].StaffID < out[j].StaffID
	})
	return out, nil
}

func (r memAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.joined(rec), nil
}

func (r memAttendanceRepo) UpsertByStaffAndDay(ctx context.Context, staffID string, day time.Time, status attendance.Status, notes string) (attendance.Attendance, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rec := range r.records {
		if rec.StaffID == staffID && calendar.FormatDay(rec.Date) == calendar.FormatDay(day) {
			rec.Status = status
			if notes != "" {
				rec.Notes = notes
			}
			rec.UpdatedAt = time.Now()
			r.records[id] = rec
			return r.joined(rec), false, nil
		}
	}
	rec := attendance.Attendance{
		ID:        uuid.NewString(),
		StaffID:   staffID,
		Date:      time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		Status:    status,
		Notes:     notes,
		MarkedAt:  time.Now(),
		UpdatedAt: time.Now(),
	}
	r.records[rec.ID] = rec
	return r.joined(rec), true, nil
}

func (r memAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[att.ID]; !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	for id, rec := range r.records {
		if id != att.ID && rec.StaffID == att.StaffID && calendar.FormatDay(rec.Date) == calendar.FormatDay(att.Date) {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
	}
	r.records[att.ID] = att
	return r.joined(att), nil
}

func (r memAttendanceRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.records, id)
	return nil
}

type memUserRepo struct{ *memStore }

func (r memUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r memUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r memUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	r.users[u.ID] = u
	return u, nil
}

func (r memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r memUserRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}

type memTokenRepo struct{ *memStore }

func (r memTokenRepo) CreateRefreshToken(ctx context.Context, userID, token string, expiresAt int64, session auth.SessionTrackingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = false
	return nil
}

func (r memTokenRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	revoked, ok := r.tokens[token]
	return !ok || revoked, nil
}

func (r memTokenRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token]; ok {
		r.tokens[token] = true
	}
	return nil
}

func (r memTokenRepo) PurgeExpired(ctx context.Context) (int64, error) { return 0, nil }

type inlineTransactor struct{}

func (inlineTransactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// testServer is the full router over in-memory repositories.
type testServer struct {
	t       *testing.T
	store   *memStore
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := newMemStore()
	staffRepo := memStaffRepo{store}
	attendanceRepo := memAttendanceRepo{store}
	jwtSvc := jwt.NewJWTService(handlerTestSecret, time.Hour, 24*time.Hour, false)

	handlers := Handlers{
		Auth:       NewAuthHandler(jwtSvc, authService.NewAuthService(inlineTransactor{}, memUserRepo{store}, jwtSvc, memTokenRepo{store})),
		Staff:      NewStaffHandler(staffService.NewStaffService(staffRepo)),
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(attendanceRepo, staffRepo, time.UTC)),
		Report:     NewReportHandler(reportService.NewReportService(staffRepo, attendanceRepo, spreadsheet.NewExcelWriter(), time.UTC)),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testServer{
		t:       t,
		store:   store,
		handler: NewRouter(logger, []string{"http://localhost:3000"}, jwtSvc, handlers),
	}
}

type requestOption func(*http.Request)

func withToken(token string) requestOption {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withCookie(c *http.Cookie) requestOption {
	return func(r *http.Request) { r.AddCookie(c) }
}

func (s *testServer) do(method, path string, body any, opts ...requestOption) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
	Meta    *response.Meta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}

// register creates an account and returns its tokens. The first account is the admin.
func (s *testServer) register(name, email string) auth.TokenResponse {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": name, "email": email, "password": "password123",
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var tokens auth.TokenResponse
	decodeEnvelope(s.t, rec, &tokens)
	return tokens
}

func (s *testServer) createStaff(token, staffID, name, department string) staff.StaffResponse {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/staff", map[string]any{
		"staffId": staffID, "name": name, "department": department, "yearOfJoining": 2015,
	}, withToken(token))
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var created staff.StaffResponse
	decodeEnvelope(s.t, rec, &created)
	return created
}

func (s *testServer) mark(token, staffID, date string, status attendance.Status) *httptest.ResponseRecorder {
	s.t.Helper()
	return s.do(http.MethodPost, "/api/attendance", map[string]any{
		"staffId": staffID, "date": date, "status": status,
	}, withToken(token))
}
