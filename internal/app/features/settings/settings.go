// internal/app/features/settings/settings.go
package settings

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/system/auth"
	"github.com/dalemusser/edupath/internal/app/system/respond"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/app/system/timeouts"
	"github.com/dalemusser/edupath/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Input is the full settings document. PUT replaces every field; omitted
// fields are cleared.
type Input struct {
	SiteName     string             `json:"siteName"`
	Tagline      string             `json:"tagline"`
	ContactEmail string             `json:"contactEmail"`
	ContactPhone string             `json:"contactPhone"`
	WhatsApp     string             `json:"whatsapp"`
	Address      string             `json:"address"`
	Social       models.SocialLinks `json:"social"`
}

// Validate checks the settings. The partial flag is ignored; settings are
// always replaced whole.
func (in Input) Validate(bool) schema.Errors {
	c := schema.NewChecker(false)
	c.Required("siteName", &in.SiteName)
	c.MaxLen("siteName", &in.SiteName, 120)
	c.MaxLen("tagline", &in.Tagline, 200)
	c.Email("contactEmail", &in.ContactEmail)
	c.MaxLen("contactPhone", &in.ContactPhone, 40)
	c.MaxLen("whatsapp", &in.WhatsApp, 40)
	c.MaxLen("address", &in.Address, 300)
	c.URL("social.facebook", &in.Social.Facebook)
	c.URL("social.instagram", &in.Social.Instagram)
	c.URL("social.linkedin", &in.Social.LinkedIn)
	c.URL("social.youtube", &in.Social.YouTube)
	c.URL("social.x", &in.Social.X)
	return c.Errors()
}

// ServeSettings handles GET /api/settings and GET /api/public/settings.
func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "settings.get")
	defer cancel()

	s, err := h.Store.Get(ctx)
	if err != nil {
		h.Log.Error("load settings failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, http.StatusOK, respond.Body{"settings": s})
}

// HandleSettings handles PUT /api/settings.
func (h *Handler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	in, err := schema.Decode[Input](r.Body, h.MaxBodyBytes)
	if err != nil {
		crud.WriteError(w, h.Log, "settings", err)
		return
	}
	if errs := in.Validate(false); len(errs) > 0 {
		crud.WriteError(w, h.Log, "settings", errs)
		return
	}

	s := models.SiteSettings{
		SiteName:     in.SiteName,
		Tagline:      in.Tagline,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		WhatsApp:     in.WhatsApp,
		Address:      in.Address,
		Social:       in.Social,
	}
	if u, ok := auth.CurrentUser(r); ok {
		if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			s.UpdatedByID = &oid
		}
		s.UpdatedByName = u.Name
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "settings.save")
	defer cancel()

	saved, err := h.Store.Save(ctx, s, time.Now().UTC().Truncate(time.Millisecond))
	if err != nil {
		h.Log.Error("save settings failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	h.AuditLog.SettingsUpdated(context.WithoutCancel(ctx), r)
	respond.OK(w, http.StatusOK, respond.Body{"settings": saved})
}
