package market

import (
	"strings"

	"github.com/hongminglow/ubu-lite/internal/models"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
)

// view returns a profile copy with its services and portfolio attached.
func (m *Market) view(p *models.Creative) models.Creative {
	out := *p
	out.Services = nil
	for _, s := range m.services {
		if s.CreativeProfile == p.ID {
			out.Services = append(out.Services, models.ServiceBrief{
				ID:           s.ID,
				Title:        s.Title,
				CategoryName: s.CategoryName,
				Price:        s.Price,
			})
		}
	}
	out.PortfolioItems = values(m.portfolio, func(it *models.PortfolioItem) bool { return it.Profile == p.ID })
	return out
}

func (m *Market) profileOf(userID int64) *models.Creative {
	return find(m.profiles, func(p *models.Creative) bool { return p.User.ID == userID })
}

// Creatives lists profiles, filtered by city or region when location is set.
func (m *Market) Creatives(location string) []models.Creative {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(strings.TrimSpace(location))
	out := make([]models.Creative, 0, len(m.profiles))
	for _, p := range m.profiles {
		if q != "" && !strings.Contains(strings.ToLower(p.City), q) && !strings.Contains(strings.ToLower(p.Region), q) {
			continue
		}
		out = append(out, m.view(p))
	}
	return out
}

func (m *Market) Creative(id int64) (models.Creative, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := find(m.profiles, func(p *models.Creative) bool { return p.ID == id })
	if p == nil {
		return models.Creative{}, ErrNotFound
	}
	return m.view(p), nil
}

// MyProfile returns the caller's profile, creating it for a creative that has none.
func (m *Market) MyProfile(user models.User) (models.Creative, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profileOf(user.ID)
	if p == nil {
		if !user.IsCreative() {
			return models.Creative{}, forbidden("Only creatives have profiles.")
		}
		p = &models.Creative{ID: m.next("profile"), User: user}
		m.profiles = append(m.profiles, p)
	}
	return m.view(p), nil
}

// UpdateProfile applies patch and, when avatar is non-empty, records the uploaded avatar path.
func (m *Market) UpdateProfile(userID int64, patch dto.ProfilePatch, avatar string) (models.Creative, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profileOf(userID)
	if p == nil {
		return models.Creative{}, forbidden("Only creatives can update profiles.")
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	if patch.Skills != nil {
		p.Skills = *patch.Skills
	}
	if patch.HourlyRate != nil {
		rate := *patch.HourlyRate
		if _, err := parseMoney(rate); err != nil {
			return models.Creative{}, invalidField("hourly_rate", "A valid number is required.")
		}
		p.HourlyRate = &rate
	}
	if patch.City != nil {
		p.City = *patch.City
	}
	if patch.Region != nil {
		p.Region = *patch.Region
	}
	if patch.PortfolioLinks != nil {
		p.PortfolioLinks = *patch.PortfolioLinks
	}
	if avatar != "" {
		path := "/media/avatars/" + avatar
		p.Avatar = &path
	}
	return m.view(p), nil
}

func (m *Market) Categories() []models.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	return values(m.categories, nil)
}

func (m *Market) Services() []models.Service {
	m.mu.Lock()
	defer m.mu.Unlock()
	return values(m.services, nil)
}

func (m *Market) Service(id int64) (models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := find(m.services, func(s *models.Service) bool { return s.ID == id })
	if s == nil {
		return models.Service{}, ErrNotFound
	}
	return *s, nil
}

// CreateService adds a service to the caller's profile.
func (m *Market) CreateService(userID int64, in dto.ServiceInput) (models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profileOf(userID)
	if p == nil {
		return models.Service{}, forbidden("Only creatives with a profile may create services.")
	}
	if strings.TrimSpace(in.Title) == "" {
		return models.Service{}, invalidField("title", "This field may not be blank.")
	}
	cents, err := parseMoney(in.Price)
	if err != nil {
		return models.Service{}, invalidField("price", "A valid number is required.")
	}
	s := &models.Service{
		ID:              m.next("service"),
		CreativeProfile: p.ID,
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		Price:           formatMoney(cents),
	}
	if err := m.assignCategory(s, in.Category); err != nil {
		return models.Service{}, err
	}
	m.services = append(m.services, s)
	return *s, nil
}

func (m *Market) assignCategory(s *models.Service, id *int64) error {
	if id == nil {
		return nil
	}
	c := find(m.categories, func(c *models.Category) bool { return c.ID == *id })
	if c == nil {
		return invalidField("category", "Invalid pk - object does not exist.")
	}
	cid := c.ID
	s.Category = &cid
	s.CategoryName = c.Name
	return nil
}

func (m *Market) ownedService(userID, id int64) (*models.Service, error) {
	s := find(m.services, func(s *models.Service) bool { return s.ID == id })
	if s == nil {
		return nil, ErrNotFound
	}
	p := m.profileOf(userID)
	if p == nil || p.ID != s.CreativeProfile {
		return nil, forbidden("You do not have permission to perform this action.")
	}
	return s, nil
}

func (m *Market) UpdateService(userID, id int64, patch dto.ServicePatch) (models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.ownedService(userID, id)
	if err != nil {
		return models.Service{}, err
	}
	if patch.Price != nil {
		cents, err := parseMoney(*patch.Price)
		if err != nil {
			return models.Service{}, invalidField("price", "A valid number is required.")
		}
		s.Price = formatMoney(cents)
	}
	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.Description != nil {
		s.Description = *patch.Description
	}
	if err := m.assignCategory(s, patch.Category); err != nil {
		return models.Service{}, err
	}
	return *s, nil
}

func (m *Market) DeleteService(userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.ownedService(userID, id); err != nil {
		return err
	}
	m.services = remove(m.services, func(s *models.Service) bool { return s.ID == id })
	return nil
}

// Portfolio lists the caller's own items.
func (m *Market) Portfolio(userID int64) []models.PortfolioItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profileOf(userID)
	if p == nil {
		return []models.PortfolioItem{}
	}
	return values(m.portfolio, func(it *models.PortfolioItem) bool { return it.Profile == p.ID })
}

// PortfolioUpload is a new portfolio item. Filename is set for file uploads,
// ExternalURL for links.
type PortfolioUpload struct {
	Title       string
	MediaType   string
	Filename    string
	ExternalURL string
}

func (m *Market) AddPortfolioItem(userID int64, in PortfolioUpload) (models.PortfolioItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profileOf(userID)
	if p == nil {
		return models.PortfolioItem{}, forbidden("Only creatives can add portfolio items.")
	}
	mediaType := in.MediaType
	if mediaType == "" {
		mediaType = "image"
	}
	if mediaType != "image" && mediaType != "video" && mediaType != "link" {
		return models.PortfolioItem{}, invalidField("media_type", `"`+mediaType+`" is not a valid choice.`)
	}
	it := &models.PortfolioItem{
		ID:          m.next("portfolio"),
		Profile:     p.ID,
		Title:       in.Title,
		MediaType:   mediaType,
		ExternalURL: in.ExternalURL,
		CreatedAt:   m.now().UTC(),
	}
	if in.Filename != "" {
		path := "/media/portfolio/" + in.Filename
		it.File = &path
	}
	m.portfolio = append(m.portfolio, it)
	return *it, nil
}

func (m *Market) DeletePortfolioItem(userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profileOf(userID)
	it := find(m.portfolio, func(it *models.PortfolioItem) bool { return it.ID == id })
	if it == nil || p == nil || it.Profile != p.ID {
		return ErrNotFound
	}
	m.portfolio = remove(m.portfolio, func(it *models.PortfolioItem) bool { return it.ID == id })
	return nil
}

func remove[T any](items []*T, match func(*T) bool) []*T {
	out := items[:0]
	for _, it := range items {
		if !match(it) {
			out = append(out, it)
		}
	}
	return out
}
