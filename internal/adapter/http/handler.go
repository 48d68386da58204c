package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"cv-generator/internal/domain"
	"cv-generator/internal/model"
	"cv-generator/internal/store"
	"cv-generator/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

type Enhancer interface {
	Enhance(ctx context.Context, s *store.Session) (usecase.Report, error)
}

type Exporter interface {
	Enabled() bool
	Export(ctx context.Context, sessionID uuid.UUID, cv domain.CV) (*usecase.ExportResult, error)
	Exports(ctx context.Context, limit int) ([]domain.CVExport, error)
}

type PreviewRenderer interface {
	RenderPreview(w io.Writer, cv domain.CV) error
	RenderDocument(w io.Writer, cv domain.CV) error
}

type Handler struct {
	sessions *store.Registry
	enhancer Enhancer
	exporter Exporter
	preview  PreviewRenderer
	log      *slog.Logger
}

func NewHandler(sessions *store.Registry, e Enhancer, x Exporter, p PreviewRenderer) *Handler {
	return &Handler{
		sessions: sessions,
		enhancer: e,
		exporter: x,
		preview:  p,
		log:      slog.Default().With("component", "http"),
	}
}

// Register mounts every route on r.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/health", h.Health)

	api := r.Group("/api")
	api.Get("/styles", h.Styles)
	api.Get("/skill-categories", h.SkillCategories)
	api.Get("/exports", h.ListExports)

	api.Post("/sessions", h.CreateSession)
	api.Post("/sessions/import", h.ImportSession)

	s := api.Group("/sessions/:id")
	s.Get("/", h.GetSession)
	s.Delete("/", h.DeleteSession)
	s.Get("/document", h.Document)
	s.Put("/personal", h.SetPersonal)
	s.Put("/style", h.SetStyle)
	for name, kind := range recordKinds {
		s.Post("/"+name, h.AddRecord(kind))
		s.Patch("/"+name+"/:rid", h.UpdateRecord(kind))
		s.Delete("/"+name+"/:rid", h.RemoveRecord(kind))
	}
	s.Post("/enhance", h.Enhance)
	s.Get("/preview", h.Preview)
	s.Get("/download", h.Download)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "sessions": h.sessions.Len()})
}

func (h *Handler) Styles(c *fiber.Ctx) error {
	return c.JSON(domain.StyleOptions())
}

func (h *Handler) SkillCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories":   domain.SkillCategories,
		"levels":       domain.SkillLevels(),
		"defaultLevel": domain.DefaultSkillLevel,
	})
}

type sessionView struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Enhancing bool      `json:"enhancing"`
	CV        domain.CV `json:"cv"`
}

func viewOf(s *store.Session, cv domain.CV) sessionView {
	return sessionView{ID: s.ID, CreatedAt: s.CreatedAt, Enhancing: s.Enhancing(), CV: cv}
}

func (h *Handler) session(c *fiber.Ctx) (*store.Session, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, errInvalidID
	}
	return h.sessions.Get(id)
}

func (h *Handler) CreateSession(c *fiber.Ctx) error {
	s := h.sessions.Create()
	return c.Status(fiber.StatusCreated).JSON(viewOf(s, s.Snapshot()))
}

func (h *Handler) ImportSession(c *fiber.Ctx) error {
	cv, err := model.DecodeDocument(c.Body())
	if err != nil {
		return errorJSON(c, err)
	}
	s := h.sessions.Import(cv)
	return c.Status(fiber.StatusCreated).JSON(viewOf(s, s.Snapshot()))
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(viewOf(s, s.Snapshot()))
}

func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, errInvalidID)
	}
	if err := h.sessions.Delete(id); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Document returns the bare CV, in the shape ImportSession accepts.
func (h *Handler) Document(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cv.json"`)
	return c.JSON(s.Snapshot())
}

func (h *Handler) SetPersonal(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return errorJSON(c, err)
	}
	var patch store.PersonalPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	patch = detachPatch(patch)
	cv := s.Apply(func(cv domain.CV) domain.CV { return store.SetPersonalInfo(cv, patch) })
	return c.JSON(viewOf(s, cv))
}

func (h *Handler) SetStyle(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return errorJSON(c, err)
	}
	var req styleReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if err := validate.Struct(req); err != nil {
		return errorJSON(c, err)
	}
	style := domain.ParseCVStyle(utils.CopyString(req.Style))
	cv := s.Apply(func(cv domain.CV) domain.CV { return store.SetStyle(cv, style) })
	return c.JSON(viewOf(s, cv))
}

func (h *Handler) AddRecord(kind recordKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := h.session(c)
		if err != nil {
			return errorJSON(c, err)
		}
		add, err := kind.add(c)
		if err != nil {
			return errorJSON(c, err)
		}
		var id string
		cv := s.Apply(func(cv domain.CV) domain.CV {
			cv, id = add(cv)
			return cv
		})
		v := viewOf(s, cv)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "session": v})
	}
}

func (h *Handler) UpdateRecord(kind recordKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := h.session(c)
		if err != nil {
			return errorJSON(c, err)
		}
		var req updateReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
		if err := validate.Struct(req); err != nil {
			return errorJSON(c, err)
		}
		if !kind.hasField(req.Field) {
			return errorJSON(c, fmt.Errorf("%w %q", errUnknownField, req.Field))
		}

		rid := c.Params("rid")
		found := false
		cv := s.Apply(func(cv domain.CV) domain.CV {
			found = kind.has(cv, rid)
			return kind.update(cv, rid, req.Field, detachValue(req.Value))
		})
		if !found {
			return errorJSON(c, errRecordNotFound)
		}
		return c.JSON(viewOf(s, cv))
	}
}

func (h *Handler) RemoveRecord(kind recordKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := h.session(c)
		if err != nil {
			return errorJSON(c, err)
		}
		rid := c.Params("rid")
		found := false
		cv := s.Apply(func(cv domain.CV) domain.CV {
			found = kind.has(cv, rid)
			return kind.remove(cv, rid)
		})
		if !found {
			return errorJSON(c, errRecordNotFound)
		}
		return c.JSON(viewOf(s, cv))
	}
}

// Enhance runs the enhancement flow synchronously and answers with one
// notification, whatever the outcome.
func (h *Handler) Enhance(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return errorJSON(c, err)
	}

	rep, err := h.enhancer.Enhance(c.UserContext(), s)
	if errors.Is(err, usecase.ErrEnhancementInProgress) {
		return errorJSON(c, err)
	}
	if err != nil {
		h.log.Error("enhancement failed", "session", s.ID.String(), "error", err)
		return c.Status(HTTPStatus(err)).JSON(fiber.Map{
			"error":        err.Error(),
			"notification": notifyEnhanceFailed,
			"report":       rep,
			"session":      viewOf(s, s.Snapshot()),
		})
	}
	return c.JSON(fiber.Map{
		"notification": notifyEnhanced,
		"report":       rep,
		"session":      viewOf(s, s.Snapshot()),
	})
}

// Preview renders the HTML fragment; ?standalone=true renders a full page
// with the stylesheet inlined.
func (h *Handler) Preview(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return errorJSON(c, err)
	}
	render := h.preview.RenderPreview
	if c.QueryBool("standalone") {
		render = h.preview.RenderDocument
	}
	var buf bytes.Buffer
	if err := render(&buf, s.Snapshot()); err != nil {
		return errorJSON(c, err)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func (h *Handler) Download(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return errorJSON(c, err)
	}
	if h.exporter == nil || !h.exporter.Enabled() {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
			"error":        usecase.ErrPDFUnavailable.Error(),
			"notification": notifyDownloadStub,
		})
	}

	res, err := h.exporter.Export(c.UserContext(), s.ID, s.Snapshot())
	if err != nil {
		h.log.Error("download failed", "session", s.ID.String(), "error", err)
		return c.Status(HTTPStatus(err)).JSON(fiber.Map{
			"error":        err.Error(),
			"notification": notifyDownloadFailed,
		})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.Export.FileName))
	return c.Send(res.PDF)
}

func (h *Handler) ListExports(c *fiber.Ctx) error {
	var req listReq
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query"})
	}
	if err := validate.Struct(req); err != nil {
		return errorJSON(c, err)
	}
	if h.exporter == nil {
		return c.JSON([]domain.CVExport{})
	}
	list, err := h.exporter.Exports(c.UserContext(), req.Limit)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(list)
}

// detachPatch copies every provided field. Parsed request strings share
// memory with the request buffer unless the app is Immutable.
func detachPatch(p store.PersonalPatch) store.PersonalPatch {
	for _, f := range []**string{&p.FullName, &p.Email, &p.Phone, &p.Location, &p.LinkedIn, &p.Website, &p.Summary} {
		if *f != nil {
			v := utils.CopyString(**f)
			*f = &v
		}
	}
	return p
}

func detachValue(v interface{}) interface{} {
	if s, ok := v.(string); ok {
		return utils.CopyString(s)
	}
	return v
}
