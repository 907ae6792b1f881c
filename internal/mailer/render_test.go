package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
)

func testItem() domain.SendItem {
	return domain.SendItem{
		FirstName: "Ravi",
		LastName:  "Kumar",
		Email:     "ravi@example.com",
		Phone:     "9876543210",
		FromName:  "Acme Realty",
		FromEmail: "hello@acme.example",
		ReplyTo:   "sales@acme.example",
		Subject:   "New listings for {{ first_name }}",
		HTMLBody:  "<p>Hi {{ full_name }}, check your inbox at {{ email }}.</p>",
		TextBody:  "Hi {{ first_name }}",
	}
}

func TestRenderMergeTags(t *testing.T) {
	r := NewRenderer()
	msg, err := r.Render(testItem())
	require.NoError(t, err)

	assert.Equal(t, "New listings for Ravi", msg.Subject)
	assert.Equal(t, "<p>Hi Ravi Kumar, check your inbox at ravi@example.com.</p>", msg.HTMLBody)
	assert.Equal(t, "Hi Ravi", msg.TextBody)
	assert.Equal(t, "ravi@example.com", msg.To)
	assert.Equal(t, "Acme Realty", msg.FromName)
	assert.Equal(t, "sales@acme.example", msg.ReplyTo)
}

func TestRenderDefaultFilter(t *testing.T) {
	r := NewRenderer()
	item := testItem()
	item.FirstName = ""
	item.Subject = `Hello {{ first_name | default: "there" }}`

	msg, err := r.Render(item)
	require.NoError(t, err)
	assert.Equal(t, "Hello there", msg.Subject)
}

func TestRenderFullNameTrimsMissingLastName(t *testing.T) {
	r := NewRenderer()
	item := testItem()
	item.LastName = ""
	item.HTMLBody = "{{ full_name }}"

	msg, err := r.Render(item)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", msg.HTMLBody)
}

func TestRenderBadTemplate(t *testing.T) {
	r := NewRenderer()
	item := testItem()
	item.HTMLBody = "{% if %}"

	_, err := r.Render(item)
	assert.Error(t, err)
}

func TestRenderEmptyTextBody(t *testing.T) {
	r := NewRenderer()
	item := testItem()
	item.TextBody = ""

	msg, err := r.Render(item)
	require.NoError(t, err)
	assert.Empty(t, msg.TextBody)
}

func TestRenderReusesCachedTemplate(t *testing.T) {
	r := NewRenderer()
	item := testItem()

	first, err := r.Render(item)
	require.NoError(t, err)

	item.FirstName = "Asha"
	second, err := r.Render(item)
	require.NoError(t, err)

	assert.Equal(t, "New listings for Ravi", first.Subject)
	assert.Equal(t, "New listings for Asha", second.Subject)
}
