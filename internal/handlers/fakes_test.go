package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/glowbook/salon-api/internal/handlers"
	"github.com/glowbook/salon-api/internal/middleware"
	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/store"
	"github.com/glowbook/salon-api/internal/utils"
)

// In-memory stores backing handler tests. A non-nil err makes every method
// fail, for exercising the 500 paths.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
	err   error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			// What the driver surfaces when the unique email index rejects
			// an insert.
			return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[id]; ok {
		out := u
		return &out, nil
	}
	return nil, nil
}

func (s *fakeUserStore) FindByRole(_ context.Context, role models.Role) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []models.User
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, nil
}

type fakeServiceStore struct {
	mu       sync.Mutex
	services map[primitive.ObjectID]models.Service
	err      error
}

func newFakeServiceStore() *fakeServiceStore {
	return &fakeServiceStore{services: make(map[primitive.ObjectID]models.Service)}
}

func (s *fakeServiceStore) List(_ context.Context) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Service
	for _, svc := range s.services {
		out = append(out, svc)
	}
	return out, nil
}

func (s *fakeServiceStore) Create(_ context.Context, service *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.services[service.ID] = *service
	return nil
}

func (s *fakeServiceStore) Update(_ context.Context, id primitive.ObjectID, update store.ServiceUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	svc, ok := s.services[id]
	if !ok {
		return false, nil
	}
	if update.Name != nil {
		svc.Name = *update.Name
	}
	if update.Price != nil {
		svc.Price = *update.Price
	}
	if update.Duration != nil {
		svc.Duration = *update.Duration
	}
	s.services[id] = svc
	return true, nil
}

func (s *fakeServiceStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.services[id]; !ok {
		return false, nil
	}
	delete(s.services, id)
	return true, nil
}

type fakeAppointmentStore struct {
	mu           sync.Mutex
	appointments map[primitive.ObjectID]models.Appointment
	err          error
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{appointments: make(map[primitive.ObjectID]models.Appointment)}
}

func (s *fakeAppointmentStore) Create(_ context.Context, apt *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.appointments[apt.ID] = *apt
	return nil
}

func (s *fakeAppointmentStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if a, ok := s.appointments[id]; ok {
		out := a
		return &out, nil
	}
	return nil, nil
}

func (s *fakeAppointmentStore) SlotTaken(_ context.Context, serviceID primitive.ObjectID, date, tm string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	for _, a := range s.appointments {
		if a.ServiceID == serviceID && a.Date == date && a.Time == tm && a.Status != models.StatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeAppointmentStore) FindByOwner(_ context.Context, userID primitive.ObjectID, status models.Status) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Appointment
	for _, a := range s.appointments {
		if a.UserID == userID && a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAppointmentStore) FindAll(_ context.Context) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Appointment
	for _, a := range s.appointments {
		out = append(out, a)
	}
	return out, nil
}

func (s *fakeAppointmentStore) SetStatus(_ context.Context, id primitive.ObjectID, status models.Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	a, ok := s.appointments[id]
	if !ok {
		return false, nil
	}
	a.Status = status
	s.appointments[id] = a
	return true, nil
}

func (s *fakeAppointmentStore) get(id primitive.ObjectID) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appointments[id]
}

type testEnv struct {
	router       *gin.Engine
	users        *fakeUserStore
	services     *fakeServiceStore
	appointments *fakeAppointmentStore
}

// newTestEnv wires the handlers into a router with the same route table and
// middleware chain the server uses.
func newTestEnv(t *testing.T) *testEnv {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		users:        newFakeUserStore(),
		services:     newFakeServiceStore(),
		appointments: newFakeAppointmentStore(),
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	h := handlers.NewHandler(env.users, env.services, env.appointments, log)

	r := gin.New()

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
		authRoutes.GET("/me", middleware.RequireAuth(), h.Me)
		authRoutes.GET("/staff", middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin), h.ListStaff)
		authRoutes.DELETE("/staff/:id", middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin), h.DeleteStaff)
	}

	serviceRoutes := r.Group("/services")
	{
		serviceRoutes.GET("", h.ListServices)

		adminOnly := serviceRoutes.Group("")
		adminOnly.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin))
		{
			adminOnly.POST("", h.CreateService)
			adminOnly.PUT("/:id", h.UpdateService)
			adminOnly.DELETE("/:id", h.DeleteService)
		}
	}

	aptRoutes := r.Group("/appointments")
	aptRoutes.Use(middleware.RequireAuth())
	{
		aptRoutes.POST("", h.BookAppointment)
		aptRoutes.GET("/my", h.ListMyAppointments)
		aptRoutes.GET("/my/completed", h.ListMyCompletedAppointments)
		aptRoutes.GET("/staff", middleware.RequireRole(models.RoleStaff), h.ListAllAppointments)
		aptRoutes.GET("/admin", middleware.RequireRole(models.RoleAdmin), h.ListAllAppointments)
		aptRoutes.PUT("/:id/status", middleware.RequireRole(models.RoleStaff), h.UpdateAppointmentStatus)
		aptRoutes.PUT("/:id/cancel", h.CancelAppointment)
	}

	env.router = r
	return env
}

// addUser seeds an account directly into the fake store and returns its id.
func (env *testEnv) addUser(name, email string, role models.Role) primitive.ObjectID {
	id := primitive.NewObjectID()
	env.users.mu.Lock()
	env.users.users[id] = models.User{ID: id, Name: name, Email: email, Password: "x", Role: role}
	env.users.mu.Unlock()
	return id
}

func (env *testEnv) token(id primitive.ObjectID, role models.Role) string {
	token, err := utils.GenerateJWT(id.Hex(), string(role))
	if err != nil {
		panic(err)
	}
	return token
}

func (env *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}
