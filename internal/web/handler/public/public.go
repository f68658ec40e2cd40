// Package public serves the unauthenticated origin endpoints. Only cleared
// content is visible here; the edge cache serves the same listings from
// published blobs, this surface is the origin fallback behind it.
package public

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/config"
	categoryctl "github.com/swimfed-admin/swimfed-admin/internal/db/controller/category"
	livectl "github.com/swimfed-admin/swimfed-admin/internal/db/controller/live"
	meetctl "github.com/swimfed-admin/swimfed-admin/internal/db/controller/meet"
	newsctl "github.com/swimfed-admin/swimfed-admin/internal/db/controller/news"
	recordctl "github.com/swimfed-admin/swimfed-admin/internal/db/controller/record"
	seminarctl "github.com/swimfed-admin/swimfed-admin/internal/db/controller/seminar"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler"
	"github.com/swimfed-admin/swimfed-admin/internal/web/navigation"
)

const (
	// Path is the base path for the public read surface.
	Path = "/public"

	// RouteCategories lists the visible site sections.
	RouteCategories = Path + "/categories"

	// RouteNews lists cleared news items.
	RouteNews = Path + "/news"

	// RouteMeets lists cleared meets.
	RouteMeets = Path + "/meet"

	// RouteRecords lists one cleared record table.
	RouteRecords = Path + "/record/:category/:poolsize/:sex"

	// RouteSeminars lists cleared seminars of one fiscal year.
	RouteSeminars = Path + "/seminar"

	// RouteLive lists cleared live entries.
	RouteLive = Path + "/live"
)

// Service serves the public read endpoints.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers the public routes. No authentication applies.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.cfg = cfg
	s.db = db

	app.Get(RouteCategories, s.Categories)
	app.Get(RouteNews, s.News)
	app.Get(RouteMeets, s.Meets)
	app.Get(RouteRecords, s.Records)
	app.Get(RouteSeminars, s.Seminars)
	app.Get(RouteLive, s.Live)

	return nil
}

// Categories returns the member-visible site sections in display sequence.
func (s *Service) Categories(c *fiber.Ctx) error {
	categories, err := categoryctl.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load categories")

		return handler.Internal(c)
	}

	return c.JSON(navigation.Build(categories))
}

// News returns cleared news items, newest first.
func (s *Service) News(c *fiber.Ctx) error {
	items, err := newsctl.PublicList(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load public news")

		return handler.Internal(c)
	}

	return c.JSON(items)
}

// Meets returns cleared meets, soonest first.
func (s *Service) Meets(c *fiber.Ctx) error {
	items, err := meetctl.PublicList(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load public meets")

		return handler.Internal(c)
	}

	return c.JSON(items)
}

// Records returns one cleared record table addressed by its
// (category, poolsize, sex) triple.
func (s *Service) Records(c *fiber.Ctx) error {
	category, err := c.ParamsInt("category")
	if err != nil || category < 0 {
		return handler.BadRequest(c, "invalid category")
	}

	poolsize, err := c.ParamsInt("poolsize")
	if err != nil || poolsize < 0 {
		return handler.BadRequest(c, "invalid poolsize")
	}

	sex, err := c.ParamsInt("sex")
	if err != nil || sex < 0 {
		return handler.BadRequest(c, "invalid sex")
	}

	items, err := recordctl.PublicList(s.db, recordctl.Partition{
		Category: category,
		Poolsize: poolsize,
		Sex:      sex,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to load public records")

		return handler.Internal(c)
	}

	return c.JSON(items)
}

// Seminars returns cleared seminars of one fiscal year. Without a year
// query parameter the current fiscal year applies.
func (s *Service) Seminars(c *fiber.Ctx) error {
	year := c.QueryInt("year", seminarctl.FiscalYearOf(time.Now()))

	items, err := seminarctl.PublicList(s.db, year)
	if err != nil {
		log.Error().Err(err).Msg("failed to load public seminars")

		return handler.Internal(c)
	}

	return c.JSON(items)
}

// Live returns cleared live entries that are on air or finished.
func (s *Service) Live(c *fiber.Ctx) error {
	items, err := livectl.PublicList(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load public live entries")

		return handler.Internal(c)
	}

	return c.JSON(items)
}
