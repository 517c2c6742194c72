package service

import (
	"context"
	"fmt"

	"github.com/chasta/skyguard/internal/config"
	"github.com/chasta/skyguard/internal/content"
	"github.com/chasta/skyguard/internal/store"
	"github.com/chasta/skyguard/internal/store/model"
	"github.com/chasta/skyguard/pkg/log"
	"github.com/chasta/skyguard/pkg/metrics"
	"github.com/thoas/go-funk"
	"golang.org/x/sync/errgroup"
)

const (
	minRating = 1
	maxRating = 5

	sectionServices     = "services"
	sectionProjects     = "projects"
	sectionTestimonials = "testimonials"
)

// Landing is everything the landing page renders.
type Landing struct {
	Hero         content.Hero
	About        content.About
	Services     model.ServiceList
	Projects     model.ProjectList
	Testimonials model.TestimonialList
	Contact      content.Contact
	Navigation   []content.NavItem
}

type ContentService struct {
	store   store.Store
	contact config.Contact
	logger  *log.StructuredLogger
}

func NewContentService(s store.Store, contact config.Contact) *ContentService {
	return &ContentService{
		store:   s,
		contact: contact,
		logger:  log.NewDebugLogger("content_service"),
	}
}

// Services lists the services in display order with renderable icons.
func (cs *ContentService) Services(ctx context.Context) (model.ServiceList, error) {
	services, err := cs.store.Service().List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	return funk.Map(services, func(s model.Service) model.Service {
		s.Icon = content.NormalizeIcon(s.Icon)
		return s
	}).([]model.Service), nil
}

// Projects lists the portfolio, most recently completed first.
func (cs *ContentService) Projects(ctx context.Context) (model.ProjectList, error) {
	projects, err := cs.store.Project().List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Testimonials lists the testimonials newest first, with ratings clamped to 1..5.
func (cs *ContentService) Testimonials(ctx context.Context) (model.TestimonialList, error) {
	testimonials, err := cs.store.Testimonial().List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}

	for i := range testimonials {
		testimonials[i].Rating = clampRating(testimonials[i].Rating)
	}
	return testimonials, nil
}

// Landing aggregates the static sections and the stored ones. A section whose read fails is
// served empty so a store outage never takes the whole page down.
func (cs *ContentService) Landing(ctx context.Context) *Landing {
	tracer := cs.logger.WithContext(ctx).Operation("landing").Build()

	landing := &Landing{
		Hero:         content.NewHero(cs.contact.CompanyName),
		About:        content.NewAbout(cs.contact.CompanyName),
		Contact:      content.NewContact(cs.contact),
		Navigation:   content.Navigation(),
		Services:     model.ServiceList{},
		Projects:     model.ProjectList{},
		Testimonials: model.TestimonialList{},
	}

	// errors are handled per section, the group only joins the reads
	var g errgroup.Group
	g.Go(func() error {
		services, err := cs.Services(ctx)
		if err != nil {
			cs.degrade(ctx, sectionServices, err)
			return nil
		}
		landing.Services = services
		return nil
	})
	g.Go(func() error {
		projects, err := cs.Projects(ctx)
		if err != nil {
			cs.degrade(ctx, sectionProjects, err)
			return nil
		}
		landing.Projects = projects
		return nil
	})
	g.Go(func() error {
		testimonials, err := cs.Testimonials(ctx)
		if err != nil {
			cs.degrade(ctx, sectionTestimonials, err)
			return nil
		}
		landing.Testimonials = testimonials
		return nil
	})
	_ = g.Wait()

	tracer.Success().
		WithInt("services", len(landing.Services)).
		WithInt("projects", len(landing.Projects)).
		WithInt("testimonials", len(landing.Testimonials)).
		Log()

	return landing
}

func (cs *ContentService) degrade(ctx context.Context, section string, err error) {
	metrics.IncreaseContentReadFailuresMetric(section)
	cs.logger.WithContext(ctx).Operation("read_section").
		WithString("section", section).
		Build().
		Error(err).
		WithBool("served_empty", true).
		Log()
}

func clampRating(r int) int {
	if r < minRating {
		return minRating
	}
	if r > maxRating {
		return maxRating
	}
	return r
}
