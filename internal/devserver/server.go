package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/siteadmin/internal/common"
	"github.com/dmitrijs2005/siteadmin/internal/devserver/config"
	"github.com/dmitrijs2005/siteadmin/internal/logging"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

type Server struct {
	config  *config.Config
	log     logging.Logger
	now     func() time.Time
	issuer  *Issuer
	users   *userStore
	content *content
	router  *mux.Router
}

type Option func(*Server)

// WithClock replaces time.Now for token issuing and verification.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithPasswordCost sets the bcrypt cost used for stored passwords.
func WithPasswordCost(cost int) Option {
	return func(s *Server) { s.users.cost = cost }
}

// New builds a Server with the admin account from cfg already registered.
func New(cfg *config.Config, log logging.Logger, opts ...Option) (*Server, error) {
	s := &Server{
		config:  cfg,
		log:     log,
		now:     time.Now,
		users:   newUserStore(bcrypt.DefaultCost),
		content: newContent(),
	}
	for _, o := range opts {
		o(s)
	}
	secret := cfg.JWTSecret
	if secret == "" {
		var err error
		if secret, err = common.MakeRandHexString(32); err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		log.Warn(context.Background(), "no jwt secret configured, using a random one")
	}
	s.issuer = NewIssuer([]byte(secret), cfg.AccessTokenTTL, cfg.RefreshTokenTTL, s.now)

	if _, err := s.users.create(cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	if cfg.Seed {
		s.seed()
	}

	s.router = mux.NewRouter()
	s.router.Use(s.logRequests)
	s.routes(s.router.PathPrefix("/api").Subrouter())
	s.router.HandleFunc("/uploads/{name}", s.getUpload).Methods(http.MethodGet)
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		notFound(w, "route")
	})
	return s, nil
}

func (s *Server) routes(r *mux.Router) {
	auth := s.requireAuth

	r.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/auth/google", s.googleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", s.refresh).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", s.logout).Methods(http.MethodPost)

	r.HandleFunc("/services", s.listServices).Methods(http.MethodGet)
	r.HandleFunc("/services", auth(s.createService)).Methods(http.MethodPost)
	r.HandleFunc("/services/{id}", s.getService).Methods(http.MethodGet)
	r.HandleFunc("/services/{id}", auth(s.updateService)).Methods(http.MethodPut)
	r.HandleFunc("/services/{id}", auth(s.deleteService)).Methods(http.MethodDelete)

	r.HandleFunc("/blog", s.listBlog).Methods(http.MethodGet)
	r.HandleFunc("/blog", auth(s.createBlogPost)).Methods(http.MethodPost)
	r.HandleFunc("/blog/id/{id}", s.getBlogPost).Methods(http.MethodGet)
	r.HandleFunc("/blog/slug/{slug}", s.getBlogPostBySlug).Methods(http.MethodGet)
	r.HandleFunc("/blog/status/{status}", s.listBlogByStatus).Methods(http.MethodGet)
	r.HandleFunc("/blog/category/{category}", s.listBlogByCategory).Methods(http.MethodGet)
	r.HandleFunc("/blog/{id}", auth(s.updateBlogPost)).Methods(http.MethodPut)
	r.HandleFunc("/blog/{id}", auth(s.deleteBlogPost)).Methods(http.MethodDelete)

	r.HandleFunc("/categories", s.listCategories).Methods(http.MethodGet)
	r.HandleFunc("/categories", auth(s.createCategory)).Methods(http.MethodPost)
	r.HandleFunc("/categories/{id}", s.getCategory).Methods(http.MethodGet)
	r.HandleFunc("/categories/{id}", auth(s.updateCategory)).Methods(http.MethodPut)
	r.HandleFunc("/categories/{id}", auth(s.deleteCategory)).Methods(http.MethodDelete)

	r.HandleFunc("/clients", s.listClients).Methods(http.MethodGet)
	r.HandleFunc("/clients", auth(s.createClient)).Methods(http.MethodPost)
	r.HandleFunc("/clients/{id}", auth(s.updateClient)).Methods(http.MethodPut)
	r.HandleFunc("/clients/{id}", auth(s.deleteClient)).Methods(http.MethodDelete)

	r.HandleFunc("/inquiries", s.submitInquiry).Methods(http.MethodPost)
	r.HandleFunc("/inquiries", auth(s.listInquiries)).Methods(http.MethodGet)
	r.HandleFunc("/inquiries/filter", auth(s.filterInquiries)).Methods(http.MethodGet)
	r.HandleFunc("/inquiries/{id}", auth(s.getInquiry)).Methods(http.MethodGet)
	r.HandleFunc("/inquiries/{id}/handle", auth(s.markInquiryHandled)).Methods(http.MethodPut)
	r.HandleFunc("/inquiries/{id}", auth(s.deleteInquiry)).Methods(http.MethodDelete)

	r.HandleFunc("/testimonials", s.listTestimonials).Methods(http.MethodGet)
	r.HandleFunc("/testimonials", auth(s.createTestimonial)).Methods(http.MethodPost)
	r.HandleFunc("/testimonials/{id}", auth(s.updateTestimonial)).Methods(http.MethodPut)
	r.HandleFunc("/testimonials/{id}", auth(s.deleteTestimonial)).Methods(http.MethodDelete)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "devserver listening", "addr", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info(ctx, "devserver stopped")
	return nil
}
