package services

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/avelyx/prepmate/internal/models"
	"github.com/avelyx/prepmate/internal/testutil"
	"github.com/avelyx/prepmate/internal/utils"
)

func TestResourceSearch_RequiresSubject(t *testing.T) {
	svc := NewResourceService(&testutil.MockResourceRequestRepo{}, logrus.New())

	_, err := svc.Search(context.Background(), "user-1", models.ResourceQuery{Subject: "  "})
	if !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
}

func TestResourceSearch_DeterministicLinks(t *testing.T) {
	svc := NewResourceService(&testutil.MockResourceRequestRepo{}, logrus.New())
	q := models.ResourceQuery{Subject: "Physics", Year: "2023", Session: "May June", Paper: "Paper 2"}

	first, err := svc.Search(context.Background(), "user-1", q)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := svc.Search(context.Background(), "user-1", q)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(first.Results, second.Results) {
		t.Error("same query produced different links")
	}

	if len(first.Results) != 4 {
		t.Fatalf("got %d links, want 4", len(first.Results))
	}
	for _, link := range first.Results[:3] {
		if !strings.HasPrefix(link.URL, "https://www.google.com/search?q=") {
			t.Errorf("link %q is not a search URL: %s", link.Title, link.URL)
		}
		if !strings.Contains(link.URL, "Physics") {
			t.Errorf("link %q does not carry the subject: %s", link.Title, link.URL)
		}
	}
	if !strings.Contains(first.Results[3].URL, "papers.gceguide.com") {
		t.Errorf("directory link = %s", first.Results[3].URL)
	}

	if len(first.Suggestions) == 0 {
		t.Error("expected static suggestions")
	}
}

func TestResourceSearch_EscapesQueryTerms(t *testing.T) {
	svc := NewResourceService(&testutil.MockResourceRequestRepo{}, logrus.New())

	res, err := svc.Search(context.Background(), "user-1", models.ResourceQuery{Subject: "English Language & Literature"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, link := range res.Results {
		if strings.ContainsAny(link.URL, " ") {
			t.Errorf("unescaped URL: %s", link.URL)
		}
	}
}

func TestResourceSearch_AuditsRequest(t *testing.T) {
	repo := &testutil.MockResourceRequestRepo{}
	svc := NewResourceService(repo, logrus.New())

	res, err := svc.Search(context.Background(), "user-1", models.ResourceQuery{Subject: " Chemistry "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(repo.Inserted) != 1 {
		t.Fatalf("got %d audit rows, want 1", len(repo.Inserted))
	}
	row := repo.Inserted[0]
	if row.UserID != "user-1" {
		t.Errorf("audit owner = %q", row.UserID)
	}
	if row.Query.Subject != "Chemistry" {
		t.Errorf("audit subject = %q, want trimmed Chemistry", row.Query.Subject)
	}
	if len(row.Results) != len(res.Results) {
		t.Errorf("audit recorded %d links, response has %d", len(row.Results), len(res.Results))
	}
}

func TestResourceSearch_AuditFailureNonFatal(t *testing.T) {
	repo := &testutil.MockResourceRequestRepo{
		InsertFunc: func(context.Context, *models.ResourceRequest) error {
			return utils.E(utils.CodeInternal, "test", "mongo down", nil)
		},
	}
	svc := NewResourceService(repo, logrus.New())

	res, err := svc.Search(context.Background(), "user-1", models.ResourceQuery{Subject: "Geography"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(res.Results) == 0 {
		t.Error("expected links despite audit failure")
	}
}
