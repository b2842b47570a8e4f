package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"exam-companion-be/internal/constant"
	"exam-companion-be/internal/dto"
	"exam-companion-be/internal/entity"
	"exam-companion-be/internal/pkg/logger"
	"exam-companion-be/internal/repository/specification"
	"exam-companion-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

const (
	studentTokenExpiry = 30 * 24 * time.Hour
	accessCodeCacheTTL = 10 * time.Minute
	accessCodeCacheKey = "access_code:%s"
)

// IAccessService gates the app behind per-school access codes.
type IAccessService interface {
	Redeem(ctx context.Context, request *dto.RedeemAccessCodeRequest) (*dto.RedeemAccessCodeResponse, error)
	Catalog(ctx context.Context) *dto.CatalogResponse
}

type accessService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *redis.Client // optional, nil disables caching
	logger     logger.ILogger
}

func NewAccessService(uowFactory unitofwork.RepositoryFactory, cache *redis.Client, log logger.ILogger) IAccessService {
	return &accessService{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     log,
	}
}

// Redeem exchanges a school access code for a student token. Disabled codes
// are rejected; tokens already in the wild stay valid until they expire.
func (as *accessService) Redeem(ctx context.Context, request *dto.RedeemAccessCodeRequest) (*dto.RedeemAccessCodeResponse, error) {
	code := strings.TrimSpace(request.Code)
	if code == "" {
		return nil, fmt.Errorf("access code is required")
	}

	accessCode, err := as.lookupCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if accessCode == nil {
		return nil, fmt.Errorf("invalid access code")
	}
	if !accessCode.IsActive() {
		return nil, fmt.Errorf("this access code has been disabled")
	}

	allowedLevels := splitLevels(accessCode.AllowedLevels)

	claims := jwt.MapClaims{
		"access_code_id": accessCode.Id.String(),
		"school":         accessCode.SchoolName,
		"allowed_levels": allowedLevels,
		"exp":            time.Now().Add(studentTokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return nil, err
	}

	return &dto.RedeemAccessCodeResponse{
		Token:         signedToken,
		SchoolName:    accessCode.SchoolName,
		AllowedLevels: allowedLevels,
	}, nil
}

// Catalog lists the exam levels, subjects, and per-subject answer guidance.
func (as *accessService) Catalog(ctx context.Context) *dto.CatalogResponse {
	return &dto.CatalogResponse{
		Levels:   constant.Levels,
		Subjects: constant.Subjects,
		Guidance: constant.SubjectGuidanceTips,
	}
}

// lookupCode checks the redis cache first and falls back to the database.
// Cache failures are logged and never block redemption.
func (as *accessService) lookupCode(ctx context.Context, code string) (*entity.AccessCode, error) {
	cacheKey := fmt.Sprintf(accessCodeCacheKey, code)

	if as.cache != nil {
		if raw, err := as.cache.Get(ctx, cacheKey).Result(); err == nil {
			var cached entity.AccessCode
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	uow := as.uowFactory.NewUnitOfWork(ctx)
	accessCode, err := uow.AccessCodeRepository().FindOne(ctx, specification.ByCode{Code: code})
	if err != nil {
		return nil, err
	}
	if accessCode == nil {
		return nil, nil
	}

	if as.cache != nil {
		if raw, err := json.Marshal(accessCode); err == nil {
			if err := as.cache.Set(ctx, cacheKey, raw, accessCodeCacheTTL).Err(); err != nil {
				as.logger.Warn("access", "failed to cache access code", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}

	return accessCode, nil
}

func splitLevels(csv string) []string {
	parts := strings.Split(csv, ",")
	levels := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			levels = append(levels, trimmed)
		}
	}
	return levels
}
