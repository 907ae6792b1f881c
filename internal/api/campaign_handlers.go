package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/httputil"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/campaign"
)

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	campaigns, total, err := s.campaigns.List(r.Context(), principal(r).OrgID, campaign.ListFilter{
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]any{
		"campaigns": campaigns,
		"total":     total,
		"limit":     limit,
		"offset":    offset,
	})
}

type campaignRequest struct {
	Name            string     `json:"name"`
	EmailTemplateID string     `json:"email_template_id"`
	AudienceIDs     []string   `json:"audience_ids"`
	ScheduleType    string     `json:"schedule_type"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	CronExpression  string     `json:"cron_expression"`
	EndDate         *time.Time `json:"end_date"`
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	c, err := s.campaigns.Create(r.Context(), principal(r).OrgID, campaign.Input{
		Name:            req.Name,
		EmailTemplateID: req.EmailTemplateID,
		AudienceIDs:     req.AudienceIDs,
		ScheduleType:    req.ScheduleType,
		ScheduledAt:     req.ScheduledAt,
		CronExpression:  req.CronExpression,
		EndDate:         req.EndDate,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.Created(w, c)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := s.campaigns.Get(r.Context(), principal(r).OrgID, chi.URLParam(r, "campaignID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, c)
}

func (s *Server) handlePauseCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := s.campaigns.Pause(r.Context(), principal(r).OrgID, chi.URLParam(r, "campaignID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, c)
}

func (s *Server) handleResumeCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := s.campaigns.Resume(r.Context(), principal(r).OrgID, chi.URLParam(r, "campaignID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, c)
}

func (s *Server) handleCancelCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := s.campaigns.Cancel(r.Context(), principal(r).OrgID, chi.URLParam(r, "campaignID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, c)
}

func (s *Server) handleCampaignStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.campaigns.Stats(r.Context(), principal(r).OrgID, chi.URLParam(r, "campaignID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, stats)
}

func (s *Server) handleCampaignSends(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	sends, total, err := s.campaigns.Sends(r.Context(), principal(r).OrgID, chi.URLParam(r, "campaignID"), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]any{
		"sends":  sends,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}
