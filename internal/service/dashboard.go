package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"potensidesa/internal/model"
	"potensidesa/internal/repository"
)

// DashboardListLimit bounds every list shown on the dashboard.
const DashboardListLimit = 10

// Overview is everything the dashboard home renders. A failing section leaves its
// field empty and adds a message to Errors so the rest of the page still renders.
type Overview struct {
	Stats    model.ApprovalStats
	Pending  []model.Location
	Approved []model.Location
	Mine     []model.Location
	Desa     []model.Desa
	Errors   []string
}

// LocationForm is the raw state of the location submission form.
type LocationForm struct {
	Name        string `form:"name"`
	DesaID      string `form:"desaId"`
	Category    string `form:"category"`
	Description string `form:"description"`
	Latitude    string `form:"latitude"`
	Longitude   string `form:"longitude"`
}

// Validate checks the form locally.
func (f *LocationForm) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, &ValidationError{Field: "name", Message: "Nama lokasi wajib diisi"})
	}
	if strings.TrimSpace(f.DesaID) == "" {
		errs = append(errs, &ValidationError{Field: "desaId", Message: "Desa wajib dipilih"})
	}
	if strings.TrimSpace(f.Category) == "" {
		errs = append(errs, &ValidationError{Field: "category", Message: "Kategori wajib diisi"})
	}
	if _, err := parseCoordinate(f.Latitude, 90); err != nil {
		errs = append(errs, &ValidationError{Field: "latitude", Message: "Latitude harus di antara -90 dan 90"})
	}
	if _, err := parseCoordinate(f.Longitude, 180); err != nil {
		errs = append(errs, &ValidationError{Field: "longitude", Message: "Longitude harus di antara -180 dan 180"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func parseCoordinate(s string, bound float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, err
	}
	if v < -bound || v > bound {
		return 0, errors.New("out of range")
	}
	return v, nil
}

// DashboardService reads and reviews village potential submissions.
type DashboardService interface {
	ApprovalStats(ctx context.Context) (model.ApprovalStats, error)
	PendingApprovals(ctx context.Context, limit int) ([]model.Location, error)
	ApprovedLocations(ctx context.Context, limit int) ([]model.Location, error)
	UserLocations(ctx context.Context, userID string, limit int) ([]model.Location, error)
	Desa(ctx context.Context) ([]model.Desa, error)
	// Overview gathers the dashboard home. It never fails as a whole.
	Overview(ctx context.Context, user *model.User) *Overview
	// Review approves or rejects a pending location. Only admins may review.
	// ErrNotFound covers missing and already reviewed locations.
	Review(ctx context.Context, reviewer *model.User, locationID string, approve bool) error
	// SubmitLocation validates the form, uploads image when given and stores a pending location.
	SubmitLocation(ctx context.Context, userID string, form *LocationForm, image *UploadInput) (*model.Location, error)
}

type dashboardService struct {
	locations repository.LocationRepository
	desa      repository.DesaRepository
	uploader  UploadService
	now       func() time.Time
	log       *zap.Logger
}

func NewDashboardService(locations repository.LocationRepository, desa repository.DesaRepository, uploader UploadService, log *zap.Logger) DashboardService {
	if log == nil {
		log = zap.NewNop()
	}
	return &dashboardService{locations: locations, desa: desa, uploader: uploader, now: time.Now, log: log}
}

func (s *dashboardService) ApprovalStats(ctx context.Context) (model.ApprovalStats, error) {
	counts, err := s.locations.CountByStatus(ctx)
	if err != nil {
		return model.ApprovalStats{}, wrapProvider("location count", err)
	}
	stats := model.ApprovalStats{
		Pending:  counts[model.StatusPending],
		Approved: counts[model.StatusApproved],
		Rejected: counts[model.StatusRejected],
	}
	stats.Total = stats.Pending + stats.Approved + stats.Rejected
	return stats, nil
}

func (s *dashboardService) PendingApprovals(ctx context.Context, limit int) ([]model.Location, error) {
	return s.byStatus(ctx, model.StatusPending, limit)
}

func (s *dashboardService) ApprovedLocations(ctx context.Context, limit int) ([]model.Location, error) {
	return s.byStatus(ctx, model.StatusApproved, limit)
}

func (s *dashboardService) byStatus(ctx context.Context, status string, limit int) ([]model.Location, error) {
	items, err := s.locations.ListByStatus(ctx, status, repository.PageQuery{Limit: clampLimit(limit)})
	if err != nil {
		return nil, wrapProvider("location list", err)
	}
	return items, nil
}

func (s *dashboardService) UserLocations(ctx context.Context, userID string, limit int) ([]model.Location, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	items, err := s.locations.ListBySubmitter(ctx, userID, repository.PageQuery{Limit: clampLimit(limit)})
	if err != nil {
		return nil, wrapProvider("location list", err)
	}
	return items, nil
}

func (s *dashboardService) Desa(ctx context.Context) ([]model.Desa, error) {
	items, err := s.desa.List(ctx)
	if err != nil {
		return nil, wrapProvider("desa list", err)
	}
	return items, nil
}

func (s *dashboardService) Overview(ctx context.Context, user *model.User) *Overview {
	ov := &Overview{}
	fail := func(section string, err error) {
		s.log.Warn("dashboard_section_failed", zap.String("section", section), zap.Error(err))
		ov.Errors = append(ov.Errors, section+": "+UserMessage(err))
	}

	var err error
	if ov.Stats, err = s.ApprovalStats(ctx); err != nil {
		fail("statistik", err)
	}
	if ov.Approved, err = s.ApprovedLocations(ctx, DashboardListLimit); err != nil {
		fail("lokasi disetujui", err)
	}
	if ov.Desa, err = s.Desa(ctx); err != nil {
		fail("desa", err)
	}
	if user == nil {
		return ov
	}
	if user.IsAdmin() {
		if ov.Pending, err = s.PendingApprovals(ctx, DashboardListLimit); err != nil {
			fail("menunggu persetujuan", err)
		}
	}
	if ov.Mine, err = s.UserLocations(ctx, user.ID, DashboardListLimit); err != nil {
		fail("lokasi saya", err)
	}
	return ov
}

func (s *dashboardService) Review(ctx context.Context, reviewer *model.User, locationID string, approve bool) error {
	if !reviewer.IsAdmin() {
		return ErrForbidden
	}
	if locationID == "" {
		return ErrIDRequired
	}
	status := model.StatusRejected
	if approve {
		status = model.StatusApproved
	}
	if err := s.locations.UpdateStatus(ctx, locationID, status, reviewer.ID); err != nil {
		return wrapProvider("location review", err)
	}
	s.log.Info("location_reviewed",
		zap.String("id", locationID),
		zap.String("status", status),
		zap.String("reviewer_id", reviewer.ID),
	)
	return nil
}

func (s *dashboardService) SubmitLocation(ctx context.Context, userID string, form *LocationForm, image *UploadInput) (*model.Location, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	lat, _ := parseCoordinate(form.Latitude, 90)
	lng, _ := parseCoordinate(form.Longitude, 180)

	var imageURL string
	if image != nil {
		res, err := s.uploader.Upload(ctx, *image)
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				return nil, ValidationErrors{{Field: "image", Message: ve.Message}}
			}
			return nil, err
		}
		imageURL = res.URL
	}

	now := s.now().UTC()
	loc, err := s.locations.Create(ctx, &model.Location{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(form.Name),
		DesaID:      form.DesaID,
		Category:    strings.TrimSpace(form.Category),
		Description: strings.TrimSpace(form.Description),
		Latitude:    lat,
		Longitude:   lng,
		ImageURL:    imageURL,
		Status:      model.StatusPending,
		SubmittedBy: userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, wrapProvider("location create", err)
	}
	s.log.Info("location_submitted", zap.String("id", loc.ID), zap.String("user_id", userID))
	return loc, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return DashboardListLimit
	}
	return limit
}
