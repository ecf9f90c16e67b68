package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"

	"github.com/contestadm/backend/contestsrvc"
	"github.com/contestadm/backend/testcasesrvc"
)

type HttpServer struct {
	contestSrvc  *contestsrvc.ContestSrvc
	testcaseSrvc *testcasesrvc.TestcaseSrvc
	router       *chi.Mux
	jwtKey       []byte
}

func NewHttpServer(
	contestSrvc *contestsrvc.ContestSrvc,
	testcaseSrvc *testcasesrvc.TestcaseSrvc,
	jwtKey []byte,
	allowedOrigins []string,
) *HttpServer {
	router := chi.NewRouter()

	requestLogger := httplog.NewLogger("contestadm", httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		RequestHeaders:   true,
		MessageFieldName: "message",
	})
	router.Use(middleware.RequestID)
	router.Use(httplog.RequestLogger(requestLogger))
	router.Use(contextLogger)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           3000,
	})
	router.Use(corsMiddleware.Handler)

	router.Use(getJwtAuthMiddleware(jwtKey))

	server := &HttpServer{
		contestSrvc:  contestSrvc,
		testcaseSrvc: testcaseSrvc,
		router:       router,
		jwtKey:       jwtKey,
	}
	server.routes()
	return server
}

func (s *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, s.router)
}

// Handler exposes the router, mainly for tests.
func (s *HttpServer) Handler() http.Handler {
	return s.router
}

func (s *HttpServer) routes() {
	s.router.Get("/contests/{contestID}/standings", s.getStandings)
	s.router.Get("/contests/{contestID}/score-summaries", s.getScoreSummaries)
	s.router.Get("/contests/{contestID}/participants/{userID}/score-summary", s.getScoreSummary)
	s.router.Get("/contests/{contestID}/total-score", s.getTotalScore)
	s.router.Patch("/contests/{contestID}/unfreeze", s.patchUnfreeze)
	s.router.Put("/contests/{contestID}/problems/order", s.putProblemOrder)
	s.router.Delete("/contests/{contestID}/problems/{problemID}", s.deleteContestProblem)
	s.router.Get("/problems/{problemID}/testcases", s.getTestcases)
	s.router.Put("/problems/{problemID}/testcases", s.putTestcases)
}
