package main

import (
	_ "embed"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/shadestep/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

var page = template.Must(template.New("index").Parse(htmlPage))

// pageData fills the landing page template.
type pageData struct {
	SSHHost string
	SSHPort string
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stderr, config.GetEnv(config.EnvLogLevel, "info"))

	host := config.GetEnv(config.EnvWebHost, defaultHost)
	port := config.GetEnv(config.EnvWebPort, defaultPort)
	data := pageData{
		SSHHost: config.GetEnv(config.EnvSSHDisplayHost, "your-server.com"),
		SSHPort: config.GetEnv(config.EnvSSHPort, "22"),
	}

	http.HandleFunc("/", indexHandler(data, logger))

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func indexHandler(data pageData, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, data); err != nil {
			logger.Error("rendering page", "err", err)
		}
	}
}
