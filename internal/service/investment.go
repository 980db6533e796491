package service

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"potensidesa/internal/model"
	"potensidesa/internal/repository"
)

var (
	phonePattern  = regexp.MustCompile(`^[0-9+\-\s]+$`)
	budgetPattern = regexp.MustCompile(`^(\d+|\d{1,3}(\.\d{3})+|\d{1,3}(,\d{3})+)$`)
)

// Sectors offered in the investment form.
var Sectors = []string{"Pertanian", "Perikanan", "Peternakan", "Pariwisata", "Industri", "Perdagangan", "Energi", "Lainnya"}

// InvestmentForm is the raw state of the investment form. Every value is kept as entered
// so a failed submit can be re-rendered unchanged.
type InvestmentForm struct {
	ID           string   `form:"id"`
	Title        string   `form:"title"`
	Description  string   `form:"description"`
	Sector       string   `form:"sector"`
	DesaID       string   `form:"desaId"`
	Location     string   `form:"location"`
	Budget       string   `form:"budget"`
	LandArea     string   `form:"landArea"`
	ContactName  string   `form:"contactName"`
	ContactPhone string   `form:"contactPhone"`
	Status       string   `form:"status"`
	ImageURLs    []string `form:"imageUrls"`
	RemoveImages []string `form:"removeImage"`
}

// Validate checks the form locally. It returns ValidationErrors listing every failing field.
func (f *InvestmentForm) Validate() error {
	var errs ValidationErrors
	required := []struct{ field, value, msg string }{
		{"title", f.Title, "Judul wajib diisi"},
		{"description", f.Description, "Deskripsi wajib diisi"},
		{"sector", f.Sector, "Sektor wajib dipilih"},
		{"desaId", f.DesaID, "Desa wajib dipilih"},
		{"location", f.Location, "Lokasi wajib diisi"},
		{"contactName", f.ContactName, "Nama kontak wajib diisi"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, &ValidationError{Field: r.field, Message: r.msg})
		}
	}

	if _, err := parseBudget(f.Budget); err != nil {
		errs = append(errs, &ValidationError{Field: "budget", Message: "Anggaran harus berupa angka bulat tidak negatif"})
	}
	if _, err := parseLandArea(f.LandArea); err != nil {
		errs = append(errs, &ValidationError{Field: "landArea", Message: "Luas lahan harus berupa angka tidak negatif"})
	}
	if p := strings.TrimSpace(f.ContactPhone); p != "" && !phonePattern.MatchString(p) {
		errs = append(errs, &ValidationError{Field: "contactPhone", Message: "Nomor telepon hanya boleh berisi angka, +, - dan spasi"})
	}
	switch f.Status {
	case "", model.InvestmentDraft, model.InvestmentPublished:
	default:
		errs = append(errs, &ValidationError{Field: "status", Message: "Status tidak dikenal"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// images returns the submitted ImageURLs that pass keep, without the ones marked for removal.
func (f *InvestmentForm) images(keep func(string) bool) []string {
	drop := make(map[string]struct{}, len(f.RemoveImages))
	for _, u := range f.RemoveImages {
		drop[u] = struct{}{}
	}
	out := make([]string, 0, len(f.ImageURLs))
	for _, u := range f.ImageURLs {
		if u == "" {
			continue
		}
		if _, ok := drop[u]; ok {
			continue
		}
		if !keep(u) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// FormFromInvestment pre-fills the form from a stored record.
func FormFromInvestment(inv *model.Investment) InvestmentForm {
	f := InvestmentForm{
		ID:           inv.ID,
		Title:        inv.Title,
		Description:  inv.Description,
		Sector:       inv.Sector,
		DesaID:       inv.DesaID,
		Location:     inv.Location,
		Budget:       strconv.FormatInt(inv.Budget, 10),
		ContactName:  inv.ContactName,
		ContactPhone: inv.ContactPhone,
		Status:       inv.Status,
		ImageURLs:    append([]string(nil), inv.ImageURLs...),
	}
	if inv.LandArea > 0 {
		f.LandArea = strconv.FormatFloat(inv.LandArea, 'f', -1, 64)
	}
	return f
}

// parseBudget accepts plain digits or thousands grouped by one separator, e.g. 250.000.000 or 250,000,000.
func parseBudget(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if !budgetPattern.MatchString(s) {
		return 0, errors.New("malformed")
	}
	return strconv.ParseInt(strings.NewReplacer(".", "", ",", "").Replace(s), 10, 64)
}

// parseLandArea accepts an empty value (0) or a non-negative decimal with "." or ",".
func parseLandArea(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, err
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("out of range")
	}
	return v, nil
}

// InvestmentListResult is a page of investments.
type InvestmentListResult struct {
	Items  []model.Investment
	Total  int
	Limit  int
	Offset int
}

// InvestmentService owns investment records and their attached images.
type InvestmentService interface {
	Get(ctx context.Context, id string) (*model.Investment, error)
	List(ctx context.Context, limit, offset int) (*InvestmentListResult, error)
	// Save validates the form, uploads image when given and creates (empty ID) or updates the record.
	Save(ctx context.Context, userID string, form *InvestmentForm, image *UploadInput) (*model.Investment, error)
	Delete(ctx context.Context, id string) error
}

type investmentService struct {
	repo     repository.InvestmentRepository
	uploader UploadService
	now      func() time.Time
	log      *zap.Logger
}

func NewInvestmentService(repo repository.InvestmentRepository, uploader UploadService, log *zap.Logger) InvestmentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &investmentService{repo: repo, uploader: uploader, now: time.Now, log: log}
}

func (s *investmentService) Get(ctx context.Context, id string) (*model.Investment, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapProvider("investment get", err)
	}
	return inv, nil
}

func (s *investmentService) List(ctx context.Context, limit, offset int) (*InvestmentListResult, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, wrapProvider("investment list", err)
	}
	return &InvestmentListResult{Items: res.Items, Total: res.Total, Limit: limit, Offset: offset}, nil
}

func (s *investmentService) Save(ctx context.Context, userID string, form *InvestmentForm, image *UploadInput) (*model.Investment, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	budget, _ := parseBudget(form.Budget)
	landArea, _ := parseLandArea(form.LandArea)

	var existing *model.Investment
	if form.ID != "" {
		var err error
		if existing, err = s.repo.FindByID(ctx, form.ID); err != nil {
			return nil, wrapProvider("investment get", err)
		}
	}
	images := form.images(s.imageAllowed(existing))
	if image != nil {
		res, err := s.uploader.Upload(ctx, *image)
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				return nil, ValidationErrors{{Field: "image", Message: ve.Message}}
			}
			return nil, err
		}
		images = append(images, res.URL)
	}
	// keep the form in sync so a failed persist re-renders with the uploaded image
	form.ImageURLs = images
	form.RemoveImages = nil

	status := form.Status
	if status == "" {
		status = model.InvestmentPublished
	}
	now := s.now().UTC()
	inv := &model.Investment{
		ID:           form.ID,
		Title:        strings.TrimSpace(form.Title),
		Description:  strings.TrimSpace(form.Description),
		Sector:       form.Sector,
		DesaID:       form.DesaID,
		Location:     strings.TrimSpace(form.Location),
		Budget:       budget,
		LandArea:     landArea,
		ContactName:  strings.TrimSpace(form.ContactName),
		ContactPhone: strings.TrimSpace(form.ContactPhone),
		ImageURLs:    images,
		Status:       status,
		UpdatedAt:    now,
	}

	if inv.ID == "" {
		inv.ID = uuid.NewString()
		inv.CreatedBy = userID
		inv.CreatedAt = now
		created, err := s.repo.Create(ctx, inv)
		if err != nil {
			return nil, wrapProvider("investment create", err)
		}
		s.log.Info("investment_created", zap.String("id", created.ID), zap.String("user_id", userID))
		return created, nil
	}

	inv.CreatedBy = existing.CreatedBy
	inv.CreatedAt = existing.CreatedAt
	updated, err := s.repo.Update(ctx, inv)
	if err != nil {
		return nil, wrapProvider("investment update", err)
	}
	s.log.Info("investment_updated", zap.String("id", updated.ID), zap.String("user_id", userID))
	return updated, nil
}

// imageAllowed accepts URLs already stored on the record or written by the upload service.
// Anything else in the hidden imageUrls fields is dropped.
func (s *investmentService) imageAllowed(existing *model.Investment) func(string) bool {
	stored := map[string]struct{}{}
	if existing != nil {
		for _, u := range existing.ImageURLs {
			stored[u] = struct{}{}
		}
	}
	return func(u string) bool {
		if _, ok := stored[u]; ok {
			return true
		}
		return s.uploader != nil && s.uploader.Owns(u)
	}
}

func (s *investmentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapProvider("investment delete", err)
	}
	return nil
}
