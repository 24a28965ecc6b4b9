package api

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/SergeyKozhin/study-planner-backend/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Api struct {
	handler  http.Handler
	logger   *zap.SugaredLogger
	validate *validator.Validate

	eventsService  eventsService
	notifier       notifier
	triggerLimiter *rate.Limiter
}

type eventsService interface {
	CreateEvent(ctx context.Context, info *model.EventCreate) (*model.Event, error)
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	GetEvents(ctx context.Context, filter model.EventsFilter) ([]*model.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

type notifier interface {
	RunOnce(ctx context.Context) error
	Pending(ctx context.Context) ([]*model.Reminder, error)
}

// NewApi builds the HTTP handler. triggerPerMinute limits on-demand
// notification checks, zero or less disables the limit.
func NewApi(
	logger *zap.SugaredLogger,
	eventsService eventsService,
	notifier notifier,
	triggerPerMinute int,
) (*Api, error) {
	limit, burst := rate.Inf, 0
	if triggerPerMinute > 0 {
		limit, burst = rate.Every(time.Minute/time.Duration(triggerPerMinute)), triggerPerMinute
	}

	a := &Api{
		logger:         logger,
		validate:       newValidator(),
		eventsService:  eventsService,
		notifier:       notifier,
		triggerLimiter: rate.NewLimiter(limit, burst),
	}
	a.setupHandler()

	return a, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/events", func(r chi.Router) {
		r.Post("/", a.createEventHandler)
		r.Get("/", a.getEventsHandler)

		r.With(a.eventCtx).Route("/{eventID}", func(r chi.Router) {
			r.Get("/", a.getEventHandler)
			r.Delete("/", a.deleteEventHandler)
		})
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Post("/check", a.triggerNotificationsHandler)
		r.Get("/pending", a.pendingNotificationsHandler)
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
