package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"exam-companion-be/internal/dto"
	"exam-companion-be/internal/entity"
	"exam-companion-be/internal/pkg/logger"
	"exam-companion-be/internal/repository/specification"
	"exam-companion-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const adminTokenExpiry = 7 * 24 * time.Hour

// IAdminService manages the access code registry and the system logs view.
type IAdminService interface {
	Login(ctx context.Context, request *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)

	// Access code registry
	CreateAccessCode(ctx context.Context, request *dto.CreateAccessCodeRequest) (*dto.AccessCodeResponse, error)
	GetAccessCodes(ctx context.Context, request *dto.AccessCodeListRequest) (*dto.AccessCodeListResponse, error)
	DisableAccessCode(ctx context.Context, id uuid.UUID) (*dto.AccessCodeResponse, error)

	// Logs
	GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error)
	GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *redis.Client // optional, used to evict cached codes on disable
	logger     logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, cache *redis.Client, log logger.ILogger) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     log,
	}
}

// Login checks the shared admin password and mints a short lived admin token.
func (s *adminService) Login(ctx context.Context, request *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	hash := os.Getenv("ADMIN_PASSWORD_HASH")
	if hash == "" {
		return nil, errors.New("admin login is not configured")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(request.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(adminTokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return nil, err
	}

	return &dto.AdminLoginResponse{Token: signedToken}, nil
}

// CreateAccessCode issues a new school code. The caller may supply the code
// string; otherwise one is generated.
func (s *adminService) CreateAccessCode(ctx context.Context, request *dto.CreateAccessCodeRequest) (*dto.AccessCodeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	code := strings.TrimSpace(request.Code)
	if code == "" {
		generated, err := generateAccessCode()
		if err != nil {
			return nil, err
		}
		code = generated
	}

	existing, err := uow.AccessCodeRepository().FindOne(ctx, specification.ByCode{Code: code})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("access code %s already exists", code)
	}

	accessCode := entity.AccessCode{
		Id:            uuid.New(),
		Code:          code,
		SchoolName:    strings.TrimSpace(request.SchoolName),
		AllowedLevels: strings.Join(request.AllowedLevels, ", "),
		Status:        entity.AccessCodeStatusActive,
		CreatedAt:     time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.AccessCodeRepository().Create(ctx, &accessCode); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("admin", "access code issued", map[string]interface{}{
		"code_id": accessCode.Id.String(),
		"school":  accessCode.SchoolName,
	})

	return accessCodeToDTO(&accessCode), nil
}

func (s *adminService) GetAccessCodes(ctx context.Context, request *dto.AccessCodeListRequest) (*dto.AccessCodeListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	page := request.Page
	if page < 1 {
		page = 1
	}
	limit := request.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	}
	countSpecs := []specification.Specification{}
	if request.Status != "" {
		specs = append(specs, specification.ByStatus{Status: request.Status})
		countSpecs = append(countSpecs, specification.ByStatus{Status: request.Status})
	}

	codes, err := uow.AccessCodeRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	total, err := uow.AccessCodeRepository().Count(ctx, countSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AccessCodeResponse, 0, len(codes))
	for _, c := range codes {
		items = append(items, *accessCodeToDTO(c))
	}

	return &dto.AccessCodeListResponse{Items: items, Total: total}, nil
}

// DisableAccessCode revokes a code without deleting it, keeping the registry
// as an audit trail. Student tokens already issued stay valid until expiry.
func (s *adminService) DisableAccessCode(ctx context.Context, id uuid.UUID) (*dto.AccessCodeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	accessCode, err := uow.AccessCodeRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if accessCode == nil {
		return nil, fmt.Errorf("access code not found")
	}

	now := time.Now()
	accessCode.Status = entity.AccessCodeStatusDisabled
	accessCode.UpdatedAt = &now

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.AccessCodeRepository().Update(ctx, accessCode); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, fmt.Sprintf(accessCodeCacheKey, accessCode.Code)).Err(); err != nil {
			s.logger.Warn("admin", "failed to evict cached access code", map[string]interface{}{
				"code_id": accessCode.Id.String(),
				"error":   err.Error(),
			})
		}
	}

	s.logger.Info("admin", "access code disabled", map[string]interface{}{
		"code_id": accessCode.Id.String(),
		"school":  accessCode.SchoolName,
	})

	return accessCodeToDTO(accessCode), nil
}

func (s *adminService) GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	logs, err := s.logger.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.LogListResponse, 0, len(logs))
	for _, l := range logs {
		ts, _ := time.Parse(time.RFC3339, l.Timestamp)
		res = append(res, &dto.LogListResponse{
			Id:        l.Id,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			CreatedAt: ts,
		})
	}
	return res, nil
}

func (s *adminService) GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error) {
	l, err := s.logger.GetLogById(logId)
	if err != nil {
		return nil, err
	}

	ts, _ := time.Parse(time.RFC3339, l.Timestamp)
	return &dto.LogDetailResponse{
		LogListResponse: dto.LogListResponse{
			Id:        logId,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			CreatedAt: ts,
		},
		Details: l.Details,
	}, nil
}

func accessCodeToDTO(c *entity.AccessCode) *dto.AccessCodeResponse {
	return &dto.AccessCodeResponse{
		Id:            c.Id,
		Code:          c.Code,
		SchoolName:    c.SchoolName,
		AllowedLevels: splitLevels(c.AllowedLevels),
		Status:        string(c.Status),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// generateAccessCode produces codes like KIUL-4F7A-9C2D.
func generateAccessCode() (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return fmt.Sprintf("KIUL-%s-%s", buf[:4], buf[4:]), nil
}
