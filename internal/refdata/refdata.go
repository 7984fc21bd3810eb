// Package refdata loads and indexes the lookup collections the schedule and
// booking form consume: masters, services, breeds, age groups, tariffs and
// extra services. A Set is immutable once loaded and lives for a single
// page render; views read it but never mutate it.
package refdata

import (
	"context"
	"fmt"

	"github.com/grooming-is/schedule-web/internal/groomapi"
	"github.com/grooming-is/schedule-web/pkg/logging"
)

// API is the slice of the backend client the loader needs.
type API interface {
	Masters(ctx context.Context, token string) ([]groomapi.Master, error)
	Services(ctx context.Context, token string) ([]groomapi.Service, error)
	Breeds(ctx context.Context, token, species string) ([]groomapi.Breed, error)
	AgeGroups(ctx context.Context, token string) ([]groomapi.AgeGroup, error)
	ServiceTariffs(ctx context.Context, token string) ([]groomapi.Tariff, error)
	ExtraServices(ctx context.Context, token string) ([]groomapi.ExtraService, error)
}

// Set holds one page render's reference data, keyed for lookup.
type Set struct {
	Masters   []groomapi.Master
	Services  []groomapi.Service
	Breeds    []groomapi.Breed
	AgeGroups []groomapi.AgeGroup
	Tariffs   []groomapi.Tariff
	Extras    []groomapi.ExtraService

	mastersByID   map[groomapi.ID]*groomapi.Master
	servicesByID  map[groomapi.ID]*groomapi.Service
	breedsByID    map[groomapi.ID]*groomapi.Breed
	ageGroupsByID map[groomapi.ID]*groomapi.AgeGroup
	extrasByID    map[groomapi.ID]*groomapi.ExtraService
	tariffByKey   map[tariffKey]*groomapi.Tariff
}

type tariffKey struct {
	serviceID groomapi.ID
	size      groomapi.PetSize
}

// NewSet indexes already-fetched collections. Exposed for tests and for the
// loader below.
func NewSet(
	masters []groomapi.Master,
	services []groomapi.Service,
	breeds []groomapi.Breed,
	ageGroups []groomapi.AgeGroup,
	tariffs []groomapi.Tariff,
	extras []groomapi.ExtraService,
) *Set {
	s := &Set{
		Masters:   masters,
		Services:  services,
		Breeds:    breeds,
		AgeGroups: ageGroups,
		Tariffs:   tariffs,
		Extras:    extras,

		mastersByID:   make(map[groomapi.ID]*groomapi.Master, len(masters)),
		servicesByID:  make(map[groomapi.ID]*groomapi.Service, len(services)),
		breedsByID:    make(map[groomapi.ID]*groomapi.Breed, len(breeds)),
		ageGroupsByID: make(map[groomapi.ID]*groomapi.AgeGroup, len(ageGroups)),
		extrasByID:    make(map[groomapi.ID]*groomapi.ExtraService, len(extras)),
		tariffByKey:   make(map[tariffKey]*groomapi.Tariff, len(tariffs)),
	}
	for i := range masters {
		s.mastersByID[masters[i].ID] = &masters[i]
	}
	for i := range services {
		s.servicesByID[services[i].ID] = &services[i]
	}
	for i := range breeds {
		s.breedsByID[breeds[i].ID] = &breeds[i]
	}
	for i := range ageGroups {
		s.ageGroupsByID[ageGroups[i].ID] = &ageGroups[i]
	}
	for i := range extras {
		s.extrasByID[extras[i].ID] = &extras[i]
	}
	for i := range tariffs {
		key := tariffKey{serviceID: tariffs[i].ServiceID, size: tariffs[i].Size}
		s.tariffByKey[key] = &tariffs[i]
	}
	return s
}

// MasterByID looks up a master by normalized id.
func (s *Set) MasterByID(id groomapi.ID) (*groomapi.Master, bool) {
	m, ok := s.mastersByID[id]
	return m, ok
}

// ServiceByID looks up a service by normalized id.
func (s *Set) ServiceByID(id groomapi.ID) (*groomapi.Service, bool) {
	svc, ok := s.servicesByID[id]
	return svc, ok
}

// BreedByID looks up a breed by normalized id.
func (s *Set) BreedByID(id groomapi.ID) (*groomapi.Breed, bool) {
	b, ok := s.breedsByID[id]
	return b, ok
}

// AgeGroupByID looks up an age group by normalized id.
func (s *Set) AgeGroupByID(id groomapi.ID) (*groomapi.AgeGroup, bool) {
	a, ok := s.ageGroupsByID[id]
	return a, ok
}

// ExtraByID looks up an extra service by normalized id.
func (s *Set) ExtraByID(id groomapi.ID) (*groomapi.ExtraService, bool) {
	e, ok := s.extrasByID[id]
	return e, ok
}

// TariffFor returns the tariff for the exact (service, size) pair. No
// fallback and no interpolation: a miss is a miss.
func (s *Set) TariffFor(serviceID groomapi.ID, size groomapi.PetSize) (*groomapi.Tariff, bool) {
	t, ok := s.tariffByKey[tariffKey{serviceID: serviceID, size: size}]
	return t, ok
}

// BreedsFor lists breeds of one species in fetch order.
func (s *Set) BreedsFor(species string) []groomapi.Breed {
	var out []groomapi.Breed
	for _, b := range s.Breeds {
		if b.Species == species {
			out = append(out, b)
		}
	}
	return out
}

// Loader fetches all reference collections for a page render.
type Loader struct {
	api    API
	logger *logging.Logger
}

// NewLoader constructs a reference data loader.
func NewLoader(api API, logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.Default()
	}
	return &Loader{api: api, logger: logger}
}

// Load fetches every collection once. Any failed fetch aborts the load;
// the caller surfaces it as a generic message.
func (l *Loader) Load(ctx context.Context, token string) (*Set, error) {
	masters, err := l.api.Masters(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load masters: %w", err)
	}
	services, err := l.api.Services(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load services: %w", err)
	}
	dogs, err := l.api.Breeds(ctx, token, "dog")
	if err != nil {
		return nil, fmt.Errorf("load dog breeds: %w", err)
	}
	cats, err := l.api.Breeds(ctx, token, "cat")
	if err != nil {
		return nil, fmt.Errorf("load cat breeds: %w", err)
	}
	ageGroups, err := l.api.AgeGroups(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load age groups: %w", err)
	}
	tariffs, err := l.api.ServiceTariffs(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load tariffs: %w", err)
	}
	extras, err := l.api.ExtraServices(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load extra services: %w", err)
	}

	breeds := append(dogs, cats...)
	l.logger.Debug("reference data loaded",
		"masters", len(masters),
		"services", len(services),
		"breeds", len(breeds),
		"age_groups", len(ageGroups),
		"tariffs", len(tariffs),
		"extras", len(extras),
	)
	return NewSet(masters, services, breeds, ageGroups, tariffs, extras), nil
}
