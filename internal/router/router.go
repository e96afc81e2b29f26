package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "pawsense/docs"
	mem "pawsense/internal/adapters/storage/memory"
	pg "pawsense/internal/adapters/storage/postgres"
	"pawsense/internal/domain/capture"
	"pawsense/internal/domain/classify"
	"pawsense/internal/domain/escalation"
	"pawsense/internal/domain/history"
	"pawsense/internal/domain/pets"
	"pawsense/internal/domain/reports"
	"pawsense/internal/domain/scans"
	"pawsense/internal/middleware"
	"pawsense/internal/platform/logger"
	"pawsense/internal/ports/auth"
	"pawsense/internal/ports/capabilities"
	"pawsense/internal/ports/sessionstore"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Logger       logger.Logger

	// Opcional: si viene, pets e historial van a Postgres. Si no, in-memory.
	DB *sql.DB

	SessionStore sessionstore.Store // nil => in-memory
	MediaStore   pets.MediaStore    // nil => in-memory

	// nil => micrófono siempre concedido
	Capabilities capabilities.CapabilitiesResolver

	// Servicio de inferencia (mlapi.Client cumple las tres).
	Transport classify.Transport
	Alerter   escalation.Alerter
	Reports   reports.Generator

	// Escalation: si viene, el caller puede esperar las alertas en vuelo al apagar.
	Escalation   *escalation.Policy
	AlertTimeout time.Duration

	ResultPolicy scans.ResultPolicy

	// Si viene, el reaper de sesiones de escaneo corre hasta que Background termina.
	Background  context.Context
	SessionIdle time.Duration
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		petRepo  pets.Repository
		scanRepo history.Repository
	)
	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
		scanRepo = pg.NewScansRepo(opts.DB)
	} else {
		petRepo = mem.NewPetRepo()
		scanRepo = mem.NewScanRepo()
	}

	store := opts.SessionStore
	if store == nil {
		store = mem.NewSessionStore()
	}
	var media pets.MediaStore = mem.NewMediaStore()
	if opts.MediaStore != nil {
		media = opts.MediaStore
	}

	policy := opts.Escalation
	if policy == nil {
		policy = escalation.NewPolicy(opts.Alerter, opts.AlertTimeout, log)
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo, media)
	historySvc := history.NewService(scanRepo)
	reportsSvc := reports.NewService(store, opts.Reports, log)
	scansSvc := scans.NewService(scans.Deps{
		Pets:    petsSvc,
		Capture: capture.NewAdapter(opts.Capabilities, capture.NewPreviewRegistry(), log),
		Engine:  classify.NewEngine(opts.Transport, log),
		Policy:  policy,
		History: historySvc,
		Reports: reportsSvc,
		Results: opts.ResultPolicy,
		Logger:  log,
	})

	if opts.Background != nil {
		go scansSvc.RunReaper(opts.Background, opts.SessionIdle, 0)
	}

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	history.RegisterRoutes(r, historySvc, petsSvc)
	scans.RegisterRoutes(r, scansSvc)
	reports.RegisterRoutes(r, reportsSvc)

	return r
}
