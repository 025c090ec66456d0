package service

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"memorial-backend/internal/domains/provider/model"
)

// ProviderService serves the seeded directory and captures leads.
type ProviderService interface {
	Search(ctx context.Context, req model.SearchRequest) ([]model.SearchResult, error)
	GetByID(ctx context.Context, id string) (*model.Provider, error)
	SubmitLead(ctx context.Context, req model.LeadRequest) (*model.Lead, error)
	ListLeads(ctx context.Context) ([]model.Lead, error)
}

type providerService struct {
	catalog []model.Provider

	mu    sync.RWMutex
	leads []model.Lead
}

// NewProviderService builds a service over a fixed catalog. The
// directory is curated, not user-editable, so it ships as seed data.
func NewProviderService(catalog []model.Provider) ProviderService {
	if catalog == nil {
		catalog = SeedCatalog()
	}
	return &providerService{catalog: catalog}
}

func (s *providerService) Search(ctx context.Context, req model.SearchRequest) ([]model.SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	out := make([]model.SearchResult, 0, len(s.catalog))
	for _, p := range s.catalog {
		if req.Category != "" && p.Category != req.Category {
			continue
		}
		distance := haversineKm(req.Latitude, req.Longitude, p.Latitude, p.Longitude)
		if req.RadiusKm > 0 && distance > req.RadiusKm {
			continue
		}
		out = append(out, model.SearchResult{Provider: p, DistanceKm: distance})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out, nil
}

func (s *providerService) GetByID(ctx context.Context, id string) (*model.Provider, error) {
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			p := s.catalog[i]
			return &p, nil
		}
	}
	return nil, model.NewProviderNotFoundError(id)
}

func (s *providerService) SubmitLead(ctx context.Context, req model.LeadRequest) (*model.Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}
	if _, err := s.GetByID(ctx, req.ProviderID); err != nil {
		return nil, err
	}

	lead := model.Lead{
		ID:         uuid.NewString(),
		ProviderID: req.ProviderID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
		CreatedAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	s.leads = append(s.leads, lead)
	s.mu.Unlock()

	log.Info().
		Str("lead_id", lead.ID).
		Str("provider_id", lead.ProviderID).
		Msg("Provider lead captured")
	return &lead, nil
}

func (s *providerService) ListLeads(ctx context.Context) ([]model.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Lead, len(s.leads))
	copy(out, s.leads)
	return out, nil
}

const earthRadiusKm = 6371.0

// haversineKm is the great-circle distance between two points.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
