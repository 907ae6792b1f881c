package template

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
)

type memTemplateRepo struct {
	types     map[string]*domain.EmailType
	templates map[string]*domain.EmailTemplate
	nextID    int
}

func newMemTemplateRepo() *memTemplateRepo {
	return &memTemplateRepo{
		types:     map[string]*domain.EmailType{},
		templates: map[string]*domain.EmailTemplate{},
	}
}

func (r *memTemplateRepo) GetType(_ context.Context, orgID, id string) (*domain.EmailType, error) {
	et, ok := r.types[id]
	if !ok || et.OrganizationID != orgID {
		return nil, ErrTypeNotFound
	}
	return et, nil
}

func (r *memTemplateRepo) ListTypes(_ context.Context, orgID string) ([]domain.EmailType, error) {
	return nil, nil
}

func (r *memTemplateRepo) CreateType(_ context.Context, t *domain.EmailType) (string, error) {
	r.nextID++
	t.ID = fmt.Sprintf("type-%d", r.nextID)
	r.types[t.ID] = t
	return t.ID, nil
}

func (r *memTemplateRepo) UpdateType(_ context.Context, t *domain.EmailType) error { return nil }
func (r *memTemplateRepo) DeleteType(_ context.Context, orgID, id string) error    { return nil }

func (r *memTemplateRepo) Get(_ context.Context, orgID, id string) (*domain.EmailTemplate, error) {
	t, ok := r.templates[id]
	if !ok || t.OrganizationID != orgID {
		return nil, ErrNotFound
	}
	return t, nil
}

func (r *memTemplateRepo) List(_ context.Context, orgID string) ([]domain.EmailTemplate, error) {
	return nil, nil
}

func (r *memTemplateRepo) Create(_ context.Context, t *domain.EmailTemplate) (string, error) {
	r.nextID++
	t.ID = fmt.Sprintf("tpl-%d", r.nextID)
	r.templates[t.ID] = t
	return t.ID, nil
}

func (r *memTemplateRepo) Update(_ context.Context, t *domain.EmailTemplate) error { return nil }
func (r *memTemplateRepo) Delete(_ context.Context, orgID, id string) error        { return nil }

func validInput() Input {
	return Input{
		Name:      "Welcome",
		Subject:   "Welcome aboard",
		FromName:  "Acme Homes",
		FromEmail: "Hello@Acme.example",
		HTMLBody:  "<p>Hi {{first_name}}</p>",
	}
}

func TestCreateTemplate(t *testing.T) {
	svc := NewService(newMemTemplateRepo())

	tpl, err := svc.Create(context.Background(), "org-1", validInput())
	require.NoError(t, err)
	assert.Equal(t, "hello@acme.example", tpl.FromEmail, "from_email is stored lowercased")
	assert.Empty(t, tpl.ReplyTo)
}

func TestCreateTemplateReplyTo(t *testing.T) {
	svc := NewService(newMemTemplateRepo())

	in := validInput()
	in.ReplyTo = "Support@Acme.example"
	tpl, err := svc.Create(context.Background(), "org-1", in)
	require.NoError(t, err)
	assert.Equal(t, "support@acme.example", tpl.ReplyTo)

	in.ReplyTo = "not-an-address"
	_, err = svc.Create(context.Background(), "org-1", in)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateTemplateValidation(t *testing.T) {
	svc := NewService(newMemTemplateRepo())

	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"empty name", func(in *Input) { in.Name = " " }},
		{"empty subject", func(in *Input) { in.Subject = "" }},
		{"empty html body", func(in *Input) { in.HTMLBody = "" }},
		{"bad from_email", func(in *Input) { in.FromEmail = "nope" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := svc.Create(context.Background(), "org-1", in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateTemplateUnknownType(t *testing.T) {
	svc := NewService(newMemTemplateRepo())

	in := validInput()
	in.EmailTypeID = "missing"
	_, err := svc.Create(context.Background(), "org-1", in)
	assert.ErrorIs(t, err, ErrTypeNotFound)
}
