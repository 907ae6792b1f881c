package mailer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/osteele/liquid"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
)

// Renderer renders Liquid merge tags in template fields with per-recipient
// values. Parsed templates are cached by source text since the same
// campaign renders the identical template for thousands of recipients.
type Renderer struct {
	engine *liquid.Engine
	cache  sync.Map // map[string]*liquid.Template
}

// NewRenderer creates a renderer with the default filter set.
func NewRenderer() *Renderer {
	engine := liquid.NewEngine()

	// {{ first_name | default: "there" }}
	engine.RegisterFilter("default", func(value interface{}, defaultVal string) interface{} {
		if value == nil {
			return defaultVal
		}
		s := fmt.Sprintf("%v", value)
		if s == "" || s == "<nil>" {
			return defaultVal
		}
		return value
	})

	return &Renderer{engine: engine}
}

// Render builds the outgoing message for one recipient from a claimed
// send item. Subject, HTML and text bodies all support merge tags.
func (r *Renderer) Render(item domain.SendItem) (Message, error) {
	bindings := map[string]interface{}{
		"first_name": item.FirstName,
		"last_name":  item.LastName,
		"full_name":  strings.TrimSpace(item.FirstName + " " + item.LastName),
		"email":      item.Email,
		"phone":      item.Phone,
	}

	subject, err := r.render(item.Subject, bindings)
	if err != nil {
		return Message{}, fmt.Errorf("render subject: %w", err)
	}
	htmlBody, err := r.render(item.HTMLBody, bindings)
	if err != nil {
		return Message{}, fmt.Errorf("render html body: %w", err)
	}
	textBody, err := r.render(item.TextBody, bindings)
	if err != nil {
		return Message{}, fmt.Errorf("render text body: %w", err)
	}

	return Message{
		FromName:  item.FromName,
		FromEmail: item.FromEmail,
		ReplyTo:   item.ReplyTo,
		To:        item.Email,
		Subject:   subject,
		HTMLBody:  htmlBody,
		TextBody:  textBody,
	}, nil
}

func (r *Renderer) render(source string, bindings map[string]interface{}) (string, error) {
	if source == "" {
		return "", nil
	}
	var tpl *liquid.Template
	if cached, ok := r.cache.Load(source); ok {
		tpl = cached.(*liquid.Template)
	} else {
		parsed, err := r.engine.ParseString(source)
		if err != nil {
			return "", err
		}
		r.cache.Store(source, parsed)
		tpl = parsed
	}
	out, err := tpl.RenderString(bindings)
	if err != nil {
		return "", err
	}
	return out, nil
}
