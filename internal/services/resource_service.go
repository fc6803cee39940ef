package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/avelyx/prepmate/internal/models"
	mongorepo "github.com/avelyx/prepmate/internal/repositories/mongo"
	"github.com/avelyx/prepmate/internal/utils"
)

type ResourceResults struct {
	Results     []models.ResourceLink `json:"results"`
	Suggestions []string              `json:"suggestions"`
}

// ResourceService builds deterministic past-paper search links; no model
// call is involved.
type ResourceService interface {
	Search(ctx context.Context, userID string, q models.ResourceQuery) (*ResourceResults, error)
}

type resourceService struct {
	requests mongorepo.ResourceRequestRepo
	log      *logrus.Logger
}

func NewResourceService(requests mongorepo.ResourceRequestRepo, log *logrus.Logger) ResourceService {
	return &resourceService{requests: requests, log: log}
}

var resourceSuggestions = []string{
	"Use the subject code if known (e.g., 0625 Physics, 0580 Mathematics)",
	"Try Paper 1/2/3/4 and session terms like 'May June' or 'Oct Nov'",
	"Look for 'QP' (Question Paper), 'MS' (Mark Scheme), 'ER' (Examiner Report)",
}

func (s *resourceService) Search(ctx context.Context, userID string, q models.ResourceQuery) (*ResourceResults, error) {
	const op = "ResourceService.Search"

	q.Subject = strings.TrimSpace(q.Subject)
	q.Year = strings.TrimSpace(q.Year)
	q.Session = strings.TrimSpace(q.Session)
	q.Paper = strings.TrimSpace(q.Paper)

	if q.Subject == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "subject is required", nil)
	}

	links := buildSearchLinks(q)

	// audit log is best-effort
	if err := s.requests.Insert(ctx, &models.ResourceRequest{
		UserID:  userID,
		Query:   q,
		Results: links,
	}); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("failed to log resource request")
	}

	return &ResourceResults{Results: links, Suggestions: resourceSuggestions}, nil
}

func buildSearchLinks(q models.ResourceQuery) []models.ResourceLink {
	parts := make([]string, 0, 5)
	for _, p := range []string{"IGCSE", q.Subject, q.Year, q.Session, q.Paper} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	query := strings.Join(parts, " ")

	googleSearch := func(site string) string {
		return "https://www.google.com/search?q=" + url.QueryEscape(query+" site:"+site)
	}

	return []models.ResourceLink{
		{Title: "Google search (GCE Guide)", URL: googleSearch("gceguide.com")},
		{Title: "Google search (PapaCambridge)", URL: googleSearch("papacamb.com")},
		{Title: "Google search (Xtremepape.rs)", URL: googleSearch("xtremepape.rs")},
		{
			Title: "GCE Guide subject directory (guess)",
			URL:   "https://papers.gceguide.com/Cambridge%20IGCSE/" + url.PathEscape(q.Subject) + "/",
		},
	}
}
