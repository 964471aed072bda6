package usecase_test

import (
	"context"
	"os"
	"testing"
	"time"

	"urswat-backend/internal/domain"
	"urswat-backend/internal/usecase"
	"urswat-backend/pkg/apperror"
	"urswat-backend/pkg/auth"
	"urswat-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// Mock Repositories

type MockTalentRepo struct {
	mock.Mock
}

func (m *MockTalentRepo) Create(ctx context.Context, talent *domain.Talent) error {
	return m.Called(ctx, talent).Error(0)
}

func (m *MockTalentRepo) List(ctx context.Context) ([]domain.Talent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Talent), args.Error(1)
}

func (m *MockTalentRepo) Update(ctx context.Context, id int64, patch *domain.TalentPatch) (*domain.Talent, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Talent), args.Error(1)
}

func (m *MockTalentRepo) Delete(ctx context.Context, id int64) (*domain.Talent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Talent), args.Error(1)
}

type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) Create(ctx context.Context, company *domain.Company) error {
	return m.Called(ctx, company).Error(0)
}

func (m *MockCompanyRepo) List(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepo) Update(ctx context.Context, id int64, patch *domain.CompanyPatch) (*domain.Company, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepo) Delete(ctx context.Context, id int64) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, id int64, patch *domain.UserPatch) (*domain.User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Delete(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// stubCVStore keeps files out of the way entirely.
type stubCVStore struct {
	savedName string
	saveErr   error
	saves     int
}

func (s *stubCVStore) Save(ctx context.Context, file *domain.CVUpload) (string, error) {
	s.saves++
	if s.saveErr != nil {
		return "", s.saveErr
	}
	return s.savedName, nil
}

func (s *stubCVStore) PublicURL(name string) string {
	return "/uploads/" + name
}

// stubMailer records dispatches on a channel so the fire-and-forget
// goroutine can be observed.
type stubMailer struct {
	configured bool
	sent       chan string
}

func newStubMailer(configured bool) *stubMailer {
	return &stubMailer{configured: configured, sent: make(chan string, 1)}
}

func (m *stubMailer) SendTalentWelcome(fullName, email string) error {
	m.sent <- email
	return nil
}

func (m *stubMailer) SendCompanyWelcome(companyName, contactPerson, email string) error {
	m.sent <- email
	return nil
}

func (m *stubMailer) IsConfigured() bool {
	return m.configured
}

func strPtr(s string) *string { return &s }

func TestTalentRegister(t *testing.T) {
	validate := validator.New()

	t.Run("Should create talent and rewrite cv path to public URL", func(t *testing.T) {
		mockRepo := new(MockTalentRepo)
		cvStore := &stubCVStore{savedName: "1725000000000-ab12cd34.pdf"}
		mailer := newStubMailer(true)
		uc := usecase.NewTalentUsecase(mockRepo, cvStore, mailer, validate)

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Talent")).Return(nil).Run(func(args mock.Arguments) {
			talent := args.Get(1).(*domain.Talent)
			talent.ID = 1
			talent.Status = domain.StatusLead
			talent.CreatedAt = time.Now()
		})

		cv := &domain.CVUpload{Filename: "resume.pdf", ContentType: "application/pdf", Size: 1024}
		created, err := uc.Register(context.Background(), &domain.Talent{
			FullName: "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "+34123456789",
		}, cv)

		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, domain.StatusLead, created.Status)
		require.NotNil(t, created.CVPath)
		assert.Equal(t, "/uploads/1725000000000-ab12cd34.pdf", *created.CVPath)

		select {
		case email := <-mailer.sent:
			assert.Equal(t, "jane@example.com", email)
		case <-time.After(time.Second):
			t.Fatal("welcome email was never dispatched")
		}
	})

	t.Run("Should create talent without cv", func(t *testing.T) {
		mockRepo := new(MockTalentRepo)
		cvStore := &stubCVStore{}
		uc := usecase.NewTalentUsecase(mockRepo, cvStore, newStubMailer(false), validate)

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Talent")).Return(nil)

		created, err := uc.Register(context.Background(), &domain.Talent{
			FullName: "John Doe",
			Email:    "john@example.com",
			Phone:    "+34987654321",
		}, nil)

		require.NoError(t, err)
		assert.Nil(t, created.CVPath)
		assert.Equal(t, 0, cvStore.saves)
	})

	t.Run("Should fail validation before touching the repository", func(t *testing.T) {
		mockRepo := new(MockTalentRepo)
		uc := usecase.NewTalentUsecase(mockRepo, &stubCVStore{}, newStubMailer(false), validate)

		_, err := uc.Register(context.Background(), &domain.Talent{
			FullName: "No Email",
			Phone:    "+34123456789",
		}, nil)

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Should reject non-pdf upload before inserting", func(t *testing.T) {
		mockRepo := new(MockTalentRepo)
		cvStore := &stubCVStore{saveErr: apperror.BadRequest("Only PDF files are allowed")}
		uc := usecase.NewTalentUsecase(mockRepo, cvStore, newStubMailer(false), validate)

		cv := &domain.CVUpload{Filename: "resume.exe", ContentType: "application/octet-stream", Size: 1024}
		_, err := uc.Register(context.Background(), &domain.Talent{
			FullName: "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "+34123456789",
		}, cv)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Only PDF files are allowed")
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Should surface duplicate email as 400", func(t *testing.T) {
		mockRepo := new(MockTalentRepo)
		uc := usecase.NewTalentUsecase(mockRepo, &stubCVStore{}, newStubMailer(false), validate)

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Talent")).
			Return(apperror.Conflict("Email already registered"))

		_, err := uc.Register(context.Background(), &domain.Talent{
			FullName: "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "+34123456789",
		}, nil)

		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.Code)
		assert.Equal(t, "Email already registered", appErr.Message)
	})
}

func TestTalentList(t *testing.T) {
	validate := validator.New()

	t.Run("Should rewrite every cv path", func(t *testing.T) {
		mockRepo := new(MockTalentRepo)
		uc := usecase.NewTalentUsecase(mockRepo, &stubCVStore{}, newStubMailer(false), validate)

		mockRepo.On("List", mock.Anything).Return([]domain.Talent{
			{ID: 2, FullName: "With CV", CVPath: strPtr("abc.pdf")},
			{ID: 1, FullName: "Without CV"},
		}, nil)

		talents, err := uc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, talents, 2)
		require.NotNil(t, talents[0].CVPath)
		assert.Equal(t, "/uploads/abc.pdf", *talents[0].CVPath)
		assert.Nil(t, talents[1].CVPath)
	})
}

func TestTalentUpdate(t *testing.T) {
	validate := validator.New()

	t.Run("Should reject empty patch", func(t *testing.T) {
		mockRepo := new(MockTalentRepo)
		uc := usecase.NewTalentUsecase(mockRepo, &stubCVStore{}, newStubMailer(false), validate)

		_, err := uc.Update(context.Background(), 1, &domain.TalentPatch{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No fields to update")
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("Should reject unknown status", func(t *testing.T) {
		mockRepo := new(MockTalentRepo)
		uc := usecase.NewTalentUsecase(mockRepo, &stubCVStore{}, newStubMailer(false), validate)

		_, err := uc.Update(context.Background(), 1, &domain.TalentPatch{Status: strPtr("archived")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid status")
	})

	t.Run("Should reject malformed email", func(t *testing.T) {
		mockRepo := new(MockTalentRepo)
		uc := usecase.NewTalentUsecase(mockRepo, &stubCVStore{}, newStubMailer(false), validate)

		_, err := uc.Update(context.Background(), 1, &domain.TalentPatch{Email: strPtr("not-an-email")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email")
	})

	t.Run("Should return 404 when the talent does not exist", func(t *testing.T) {
		mockRepo := new(MockTalentRepo)
		uc := usecase.NewTalentUsecase(mockRepo, &stubCVStore{}, newStubMailer(false), validate)

		mockRepo.On("Update", mock.Anything, int64(42), mock.AnythingOfType("*domain.TalentPatch")).Return(nil, nil)

		_, err := uc.Update(context.Background(), 42, &domain.TalentPatch{Status: strPtr(domain.StatusContacted)})
		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Should return the updated record with public cv path", func(t *testing.T) {
		mockRepo := new(MockTalentRepo)
		uc := usecase.NewTalentUsecase(mockRepo, &stubCVStore{}, newStubMailer(false), validate)

		mockRepo.On("Update", mock.Anything, int64(1), mock.AnythingOfType("*domain.TalentPatch")).
			Return(&domain.Talent{ID: 1, Status: domain.StatusClient, CVPath: strPtr("abc.pdf")}, nil)

		talent, err := uc.Update(context.Background(), 1, &domain.TalentPatch{Status: strPtr(domain.StatusClient)})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusClient, talent.Status)
		assert.Equal(t, "/uploads/abc.pdf", *talent.CVPath)
	})
}

func TestTalentDelete(t *testing.T) {
	validate := validator.New()

	t.Run("Should return 404 when the talent does not exist", func(t *testing.T) {
		mockRepo := new(MockTalentRepo)
		uc := usecase.NewTalentUsecase(mockRepo, &stubCVStore{}, newStubMailer(false), validate)

		mockRepo.On("Delete", mock.Anything, int64(99)).Return(nil, nil)

		_, err := uc.Delete(context.Background(), 99)
		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Should return the deleted record", func(t *testing.T) {
		mockRepo := new(MockTalentRepo)
		uc := usecase.NewTalentUsecase(mockRepo, &stubCVStore{}, newStubMailer(false), validate)

		mockRepo.On("Delete", mock.Anything, int64(1)).
			Return(&domain.Talent{ID: 1, FullName: "Jane Doe"}, nil)

		talent, err := uc.Delete(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", talent.FullName)
	})
}

func TestCompanyRegister(t *testing.T) {
	validate := validator.New()

	t.Run("Should create company and dispatch welcome email", func(t *testing.T) {
		mockRepo := new(MockCompanyRepo)
		mailer := newStubMailer(true)
		uc := usecase.NewCompanyUsecase(mockRepo, mailer, validate)

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Company")).Return(nil).Run(func(args mock.Arguments) {
			company := args.Get(1).(*domain.Company)
			company.ID = 1
			company.Status = domain.StatusLead
		})

		created, err := uc.Register(context.Background(), &domain.Company{
			CompanyName:   "Acme SL",
			ContactPerson: "Bob Smith",
			Email:         "bob@acme.example",
			Phone:         "+34111222333",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusLead, created.Status)

		select {
		case email := <-mailer.sent:
			assert.Equal(t, "bob@acme.example", email)
		case <-time.After(time.Second):
			t.Fatal("welcome email was never dispatched")
		}
	})

	t.Run("Should skip email when sender is not configured", func(t *testing.T) {
		mockRepo := new(MockCompanyRepo)
		mailer := newStubMailer(false)
		uc := usecase.NewCompanyUsecase(mockRepo, mailer, validate)

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Company")).Return(nil)

		_, err := uc.Register(context.Background(), &domain.Company{
			CompanyName:   "Acme SL",
			ContactPerson: "Bob Smith",
			Email:         "bob@acme.example",
			Phone:         "+34111222333",
		})

		require.NoError(t, err)
		select {
		case <-mailer.sent:
			t.Fatal("email dispatched despite sender being unconfigured")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("Should fail without required fields", func(t *testing.T) {
		mockRepo := new(MockCompanyRepo)
		uc := usecase.NewCompanyUsecase(mockRepo, newStubMailer(false), validate)

		_, err := uc.Register(context.Background(), &domain.Company{CompanyName: "Acme SL"})
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestAuthRegister(t *testing.T) {
	validate := validator.New()
	tokens := auth.NewTokenManager("test-secret")

	t.Run("Should hash the password and default role to user", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens, validate)

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := uc.Register(context.Background(), "Staff One", "staff@urswat.com", "+34000000000", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.NotEqual(t, "s3cret", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")))
	})

	t.Run("Should require a password", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens, validate)

		_, err := uc.Register(context.Background(), "Staff One", "staff@urswat.com", "+34000000000", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Password is required")
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestAuthLogin(t *testing.T) {
	validate := validator.New()
	tokens := auth.NewTokenManager("test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("Should fail when the user does not exist", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens, validate)

		mockRepo.On("GetByEmail", mock.Anything, "nobody@urswat.com").Return(nil, nil)

		_, err := uc.Login(context.Background(), "nobody@urswat.com", "s3cret")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "User not found")
	})

	t.Run("Should fail on wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens, validate)

		mockRepo.On("GetByEmail", mock.Anything, "staff@urswat.com").
			Return(&domain.User{ID: 1, Email: "staff@urswat.com", Password: string(hash)}, nil)

		_, err := uc.Login(context.Background(), "staff@urswat.com", "wrong")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid password")
	})

	t.Run("Should issue a verifiable token", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens, validate)

		mockRepo.On("GetByEmail", mock.Anything, "staff@urswat.com").
			Return(&domain.User{ID: 7, Email: "staff@urswat.com", Password: string(hash)}, nil)

		token, err := uc.Login(context.Background(), "staff@urswat.com", "s3cret")
		require.NoError(t, err)

		claims, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
		assert.Equal(t, "staff@urswat.com", claims.Email)
	})
}

func TestEnsureAdmin(t *testing.T) {
	validate := validator.New()
	tokens := auth.NewTokenManager("test-secret")

	t.Run("Should create the admin when missing", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens, validate)

		mockRepo.On("GetByEmail", mock.Anything, "admin@urswat.com").Return(nil, nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			admin := args.Get(1).(*domain.User)
			assert.Equal(t, domain.RoleAdmin, admin.Role)
			assert.Equal(t, "Admin User", admin.Name)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("admin-pass")))
		})

		err := uc.EnsureAdmin(context.Background(), "admin@urswat.com", "admin-pass")
		require.NoError(t, err)
		mockRepo.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*domain.User"))
	})

	t.Run("Should not re-seed when a user with that email exists", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens, validate)

		mockRepo.On("GetByEmail", mock.Anything, "admin@urswat.com").
			Return(&domain.User{ID: 1, Email: "admin@urswat.com"}, nil)

		err := uc.EnsureAdmin(context.Background(), "admin@urswat.com", "admin-pass")
		require.NoError(t, err)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestUserList(t *testing.T) {
	validate := validator.New()

	t.Run("Should never expose password hashes", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(mockRepo, validate)

		mockRepo.On("List", mock.Anything).Return([]domain.User{
			{ID: 1, Email: "a@urswat.com", Password: "$2a$10$hash"},
			{ID: 2, Email: "b@urswat.com", Password: "$2a$10$hash"},
		}, nil)

		users, err := uc.List(context.Background())
		require.NoError(t, err)
		for _, user := range users {
			assert.Empty(t, user.Password)
		}
	})
}

func TestUserUpdate(t *testing.T) {
	validate := validator.New()

	t.Run("Should reject empty update", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(mockRepo, validate)

		_, err := uc.Update(context.Background(), 1, &domain.UserUpdate{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No fields to update")
	})

	t.Run("Should reject an update that only blanks the password", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(mockRepo, validate)

		_, err := uc.Update(context.Background(), 1, &domain.UserUpdate{Password: strPtr("")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No fields to update")
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("Should hash a new password before it reaches the repository", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(mockRepo, validate)

		mockRepo.On("Update", mock.Anything, int64(1), mock.AnythingOfType("*domain.UserPatch")).
			Return(&domain.User{ID: 1, Email: "a@urswat.com", Password: "$2a$10$hash"}, nil).
			Run(func(args mock.Arguments) {
				patch := args.Get(2).(*domain.UserPatch)
				require.NotNil(t, patch.Password)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*patch.Password), []byte("new-pass")))
			})

		user, err := uc.Update(context.Background(), 1, &domain.UserUpdate{Password: strPtr("new-pass")})
		require.NoError(t, err)
		assert.Empty(t, user.Password)
	})

	t.Run("Should return 404 when the user does not exist", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(mockRepo, validate)

		mockRepo.On("Update", mock.Anything, int64(9), mock.AnythingOfType("*domain.UserPatch")).Return(nil, nil)

		_, err := uc.Update(context.Background(), 9, &domain.UserUpdate{Name: strPtr("New Name")})
		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, 404, appErr.Code)
	})
}
