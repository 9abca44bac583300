package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/lms-go-api/internal/dto"
	"github.com/noah-isme/lms-go-api/internal/repository"
)

// CatalogService serves the public listing of published courses. Pages are
// cached in redis for a short TTL; drafts never enter the catalog, so the cache
// needs no policy awareness.
type CatalogService interface {
	ListPublished(ctx context.Context, page, pageSize int) (dto.CourseListResponse, error)
}

type catalogService struct {
	courses  repository.CourseRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewCatalogService constructs a CatalogService instance. The cache client may
// be nil, in which case every call hits the database.
func NewCatalogService(courses repository.CourseRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) CatalogService {
	return &catalogService{
		courses:  courses,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "catalog_service").Logger(),
	}
}

func (s *catalogService) ListPublished(ctx context.Context, page, pageSize int) (dto.CourseListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	cacheKey := fmt.Sprintf("catalog:published:p%d:s%d", page, pageSize)
	tracer := otel.Tracer("github.com/noah-isme/lms-go-api/internal/service/catalog")
	ctx, span := tracer.Start(ctx, "catalog.list_published")
	span.SetAttributes(attribute.String("catalog.cache_key", cacheKey))
	defer span.End()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.CourseListResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				span.SetAttributes(attribute.Bool("catalog.cache_hit", true))
				s.logger.Debug().Str("cache_key", cacheKey).Msg("catalog cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read catalog cache")
		}
	}

	courses, total, err := s.courses.ListPublished(ctx, repository.CourseFilter{Page: page, PageSize: pageSize})
	if err != nil {
		span.RecordError(err)
		return dto.CourseListResponse{}, err
	}

	response := dto.CourseListResponse{
		Courses:  dto.NewCourseResponseSlice(courses),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store catalog cache")
			}
		}
	}

	return response, nil
}
