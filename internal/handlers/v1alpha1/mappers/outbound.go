package mappers

import (
	"github.com/chasta/skyguard/api/v1alpha1"
	"github.com/chasta/skyguard/internal/content"
	"github.com/chasta/skyguard/internal/estimation"
	"github.com/chasta/skyguard/internal/service"
	"github.com/chasta/skyguard/internal/store/model"
	"github.com/chasta/skyguard/internal/util"
)

func EstimateToApi(r estimation.Result) v1alpha1.Estimate {
	return v1alpha1.Estimate{
		EstimatedCost: r.EstimatedCost,
		FormattedCost: util.FormatIDR(r.EstimatedCost),
		Package:       v1alpha1.Package(r.Package),
		Breakdown: v1alpha1.Breakdown{
			BaseCost:         r.Breakdown.BaseCost.String(),
			HeightMultiplier: r.Breakdown.HeightMultiplier.String(),
			AreaMultiplier:   r.Breakdown.AreaMultiplier.String(),
			PointsCost:       r.Breakdown.PointsCost.String(),
			Subtotal:         r.Breakdown.Subtotal.String(),
			SystemMultiplier: r.Breakdown.SystemMultiplier.String(),
			FellBack:         r.Breakdown.FellBack,
			Reason:           r.Breakdown.Reason,
		},
	}
}

func CalculationToApi(c model.Calculation) v1alpha1.Calculation {
	return v1alpha1.Calculation{
		Id:              c.ID,
		CreatedAt:       c.CreatedAt,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		BuildingType:    c.BuildingType,
		Height:          c.Height,
		Area:            c.Area,
		LightningPoints: c.LightningPoints,
		SystemType:      c.SystemType,
		EstimatedCost:   c.EstimatedCost,
		FormattedCost:   util.FormatIDR(c.EstimatedCost),
		Package:         v1alpha1.Package(c.Package),
	}
}

func CalculationResultToApi(lead service.Lead, whatsappUrl string) v1alpha1.CalculationResult {
	return v1alpha1.CalculationResult{
		Calculation: CalculationToApi(lead.Calculation),
		Estimate:    EstimateToApi(lead.Estimate),
		WhatsappUrl: whatsappUrl,
	}
}

func CalculationListToApi(page service.LeadPage) v1alpha1.CalculationList {
	items := make([]v1alpha1.Calculation, 0, len(page.Items))
	for _, c := range page.Items {
		items = append(items, CalculationToApi(c))
	}
	return v1alpha1.CalculationList{
		Items:  items,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
}

func ServiceListToApi(services model.ServiceList) []v1alpha1.Service {
	out := make([]v1alpha1.Service, 0, len(services))
	for _, s := range services {
		out = append(out, v1alpha1.Service{
			Id:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Icon:        s.Icon,
		})
	}
	return out
}

func ProjectListToApi(projects model.ProjectList) []v1alpha1.Project {
	out := make([]v1alpha1.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, v1alpha1.Project{
			Id:             p.ID,
			Title:          p.Title,
			Description:    p.Description,
			ImageUrl:       p.ImageURL,
			Location:       p.Location,
			CompletionDate: p.CompletionDate.Format(v1alpha1.DateLayout),
		})
	}
	return out
}

func TestimonialListToApi(testimonials model.TestimonialList) []v1alpha1.Testimonial {
	out := make([]v1alpha1.Testimonial, 0, len(testimonials))
	for _, t := range testimonials {
		out = append(out, v1alpha1.Testimonial{
			Id:         t.ID,
			ClientName: t.ClientName,
			Company:    t.Company,
			Message:    t.Message,
			Rating:     t.Rating,
			CreatedAt:  t.CreatedAt,
		})
	}
	return out
}

func statsToApi(stats []content.Stat) []v1alpha1.Stat {
	out := make([]v1alpha1.Stat, 0, len(stats))
	for _, s := range stats {
		out = append(out, v1alpha1.Stat{Value: s.Value, Label: s.Label})
	}
	return out
}

func LandingToApi(l *service.Landing) v1alpha1.Landing {
	features := make([]v1alpha1.Feature, 0, len(l.Hero.Features))
	for _, f := range l.Hero.Features {
		features = append(features, v1alpha1.Feature{Title: f.Title, Description: f.Description})
	}

	nav := make([]v1alpha1.NavItem, 0, len(l.Navigation))
	for _, n := range l.Navigation {
		nav = append(nav, v1alpha1.NavItem{Name: n.Name, Href: n.Href})
	}

	return v1alpha1.Landing{
		Hero: v1alpha1.Hero{
			Title:        l.Hero.Title,
			Headline:     l.Hero.Headline,
			Tagline:      l.Hero.Tagline,
			Badge:        l.Hero.Badge,
			Stats:        statsToApi(l.Hero.Stats),
			Features:     features,
			CallToAction: l.Hero.CallToAction,
		},
		About: v1alpha1.About{
			Title:        l.About.Title,
			Paragraphs:   l.About.Paragraphs,
			Achievements: statsToApi(l.About.Achievements),
			Features:     l.About.Features,
		},
		Services:     ServiceListToApi(l.Services),
		Projects:     ProjectListToApi(l.Projects),
		Testimonials: TestimonialListToApi(l.Testimonials),
		Contact: v1alpha1.Contact{
			CompanyName:     l.Contact.CompanyName,
			Phone:           l.Contact.Phone,
			WhatsappUrl:     l.Contact.WhatsAppURL,
			EstimateChatUrl: l.Contact.EstimateChatURL,
		},
		Navigation: nav,
	}
}
