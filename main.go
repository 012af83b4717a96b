package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/penguince/career-survey/app"
	"github.com/penguince/career-survey/config"
	"github.com/penguince/career-survey/database"
	"github.com/penguince/career-survey/log"
	"github.com/penguince/career-survey/mail"
	"github.com/penguince/career-survey/routes"
)

const portRetries = 100

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	if cfg.Seed {
		err = database.Seed(context.Background(), db)
		if err != nil {
			log.Fatal("main.db.seed:", err)
		}
	}

	app := app.App{
		DB:     db,
		Mail:   mail.New(cfg.Mail, cfg.ServiceUser),
		Config: cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	ln, err := listen(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Infof("Listening on http://%s", ln.Addr())
	return srv.Serve(ln)
}

// listen binds the configured port, or the next free one when taken.
func listen(cfg config.Config) (net.Listener, error) {
	for port := cfg.Port; port < cfg.Port+portRetries; port++ {
		ln, err := net.Listen("tcp", net.JoinHostPort(cfg.Host, strconv.Itoa(port)))
		if err == nil {
			return ln, nil
		}
		log.Warnf("port %d is not available, trying next port", port)
	}
	return nil, errors.New("could not find an available port after " + strconv.Itoa(portRetries) + " attempts")
}
