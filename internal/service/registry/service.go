package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
)

// Validation sentinels. Guarded deletes surface as invalid input, matching
// the original's 400 responses.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrApiaryHasColonies = fmt.Errorf("%w: apiary still has colonies", ErrInvalidInput)
)

const dateLayout = "2006-01-02"

// Geocoder resolves a street address to coordinates. Lookups are
// best-effort; a failure leaves the apiary without coordinates.
type Geocoder interface {
	Lookup(ctx context.Context, address string) (lat, lon float64, err error)
}

// Service owns the apiary/colony/event registry, including the split-event
// lineage helper.
type Service struct {
	store    repository.Store
	geocoder Geocoder
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a registry service. geocoder may be nil.
func NewService(store repository.Store, geocoder Geocoder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, geocoder: geocoder, logger: logger, now: time.Now}
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", ErrInvalidInput, value)
	}
	return t, nil
}

// ApiaryInput carries the wire payload for apiary create/update.
type ApiaryInput struct {
	Name        string   `json:"namn"`
	Address     *string  `json:"adress"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Description *string  `json:"beskrivning"`
}

// ApiaryWithStats decorates an apiary with its colony counts for listings.
type ApiaryWithStats struct {
	models.Apiary
	TotalColonies  int `json:"totalColonies"`
	ActiveColonies int `json:"activeColonies"`
}

// CreateApiary stores a new site, geocoding the address when no
// coordinates were supplied.
func (s *Service) CreateApiary(ctx context.Context, in ApiaryInput) (*models.Apiary, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: namn is required", ErrInvalidInput)
	}

	apiary := &models.Apiary{
		Name:        in.Name,
		Address:     in.Address,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Description: in.Description,
	}
	s.fillCoordinates(ctx, apiary)

	if err := s.store.Apiaries().Create(ctx, apiary); err != nil {
		return nil, err
	}
	return apiary, nil
}

// GetApiary returns one apiary with its colonies ordered by site number.
func (s *Service) GetApiary(ctx context.Context, id string) (*models.Apiary, error) {
	return s.store.Apiaries().Get(ctx, id)
}

// ListApiaries returns all apiaries with colony statistics, ordered by name.
func (s *Service) ListApiaries(ctx context.Context) ([]ApiaryWithStats, error) {
	apiaries, err := s.store.Apiaries().List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ApiaryWithStats, 0, len(apiaries))
	for _, apiary := range apiaries {
		active := 0
		for _, colony := range apiary.Colonies {
			if colony.Status == models.ColonyStatusActive {
				active++
			}
		}
		out = append(out, ApiaryWithStats{
			Apiary:         apiary,
			TotalColonies:  len(apiary.Colonies),
			ActiveColonies: active,
		})
	}
	return out, nil
}

// UpdateApiary rewrites an apiary's fields.
func (s *Service) UpdateApiary(ctx context.Context, id string, in ApiaryInput) (*models.Apiary, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: namn is required", ErrInvalidInput)
	}

	apiary := &models.Apiary{
		ID:          id,
		Name:        in.Name,
		Address:     in.Address,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Description: in.Description,
	}
	s.fillCoordinates(ctx, apiary)

	if err := s.store.Apiaries().Update(ctx, apiary); err != nil {
		return nil, err
	}
	return s.store.Apiaries().Get(ctx, id)
}

// DeleteApiary removes a site. Rejected while any colony references it.
func (s *Service) DeleteApiary(ctx context.Context, id string) error {
	count, err := s.store.Colonies().CountByApiary(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrApiaryHasColonies
	}
	return s.store.Apiaries().Delete(ctx, id)
}

func (s *Service) fillCoordinates(ctx context.Context, apiary *models.Apiary) {
	if s.geocoder == nil || apiary.Address == nil || *apiary.Address == "" {
		return
	}
	if apiary.Latitude != nil && apiary.Longitude != nil {
		return
	}
	lat, lon, err := s.geocoder.Lookup(ctx, *apiary.Address)
	if err != nil {
		s.logger.Warn("geocode lookup failed",
			zap.String("address", *apiary.Address), zap.Error(err))
		return
	}
	apiary.Latitude = &lat
	apiary.Longitude = &lon
}

// ColonyInput carries the wire payload for colony create/update.
type ColonyInput struct {
	ApiaryID         string  `json:"bigardId"`
	Name             string  `json:"namn"`
	SiteNumber       *int    `json:"platsNummer"`
	QueenRace        *string `json:"drottningRas"`
	QueenYear        *int    `json:"drottningAr"`
	QueenWingClipped bool    `json:"drottningVingklippt"`
	HiveType         *string `json:"kupaTyp"`
	BroodFrameType   *string `json:"ramTypYngelrum"`
	SuperFrameType   *string `json:"ramTypSkattlador"`
	Status           string  `json:"status"`
	Notes            *string `json:"anteckningar"`
}

// CreateColony stores a new colony after verifying its apiary exists.
func (s *Service) CreateColony(ctx context.Context, in ColonyInput) (*models.Colony, error) {
	if in.ApiaryID == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: bigardId and namn are required", ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = models.ColonyStatusActive
	}
	if !models.ValidColonyStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if _, err := s.store.Apiaries().Get(ctx, in.ApiaryID); err != nil {
		return nil, err
	}

	colony := &models.Colony{
		ApiaryID:         in.ApiaryID,
		Name:             in.Name,
		SiteNumber:       in.SiteNumber,
		QueenRace:        in.QueenRace,
		QueenYear:        in.QueenYear,
		QueenWingClipped: in.QueenWingClipped,
		HiveType:         in.HiveType,
		BroodFrameType:   in.BroodFrameType,
		SuperFrameType:   in.SuperFrameType,
		Status:           status,
		Notes:            in.Notes,
	}
	if err := s.store.Colonies().Create(ctx, colony); err != nil {
		return nil, err
	}
	return colony, nil
}

// GetColony returns one colony with events, lineage and apiary.
func (s *Service) GetColony(ctx context.Context, id string) (*models.Colony, error) {
	return s.store.Colonies().Get(ctx, id)
}

// ListColonies returns colonies filtered by apiary and status.
func (s *Service) ListColonies(ctx context.Context, filter repository.ColonyFilter) ([]models.Colony, error) {
	if filter.Status != "" && !models.ValidColonyStatus(filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	return s.store.Colonies().List(ctx, filter)
}

// UpdateColony rewrites a colony's fields.
func (s *Service) UpdateColony(ctx context.Context, id string, in ColonyInput) (*models.Colony, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: namn is required", ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = models.ColonyStatusActive
	}
	if !models.ValidColonyStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	existing, err := s.store.Colonies().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apiaryID := existing.ApiaryID
	if in.ApiaryID != "" && in.ApiaryID != apiaryID {
		if _, err := s.store.Apiaries().Get(ctx, in.ApiaryID); err != nil {
			return nil, err
		}
		apiaryID = in.ApiaryID
	}

	colony := &models.Colony{
		ID:               id,
		ApiaryID:         apiaryID,
		Name:             in.Name,
		SiteNumber:       in.SiteNumber,
		QueenRace:        in.QueenRace,
		QueenYear:        in.QueenYear,
		QueenWingClipped: in.QueenWingClipped,
		HiveType:         in.HiveType,
		BroodFrameType:   in.BroodFrameType,
		SuperFrameType:   in.SuperFrameType,
		Status:           status,
		Notes:            in.Notes,
	}
	if err := s.store.Colonies().Update(ctx, colony); err != nil {
		return nil, err
	}
	return s.store.Colonies().Get(ctx, id)
}

// DeleteColony removes a colony and cascades to its events.
func (s *Service) DeleteColony(ctx context.Context, id string) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		return tx.Colonies().Delete(ctx, id)
	})
}
