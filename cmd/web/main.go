package main

import (
	_ "embed"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/tomz197/protector/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

// renderPage fills the connect instructions into the landing page.
func renderPage(sshHost, sshPort string) string {
	cmd := "ssh " + sshHost
	if sshPort != "" && sshPort != "22" {
		cmd = fmt.Sprintf("ssh -p %s %s", sshPort, sshHost)
	}
	r := strings.NewReplacer("{{.SSHHost}}", sshHost, "{{.SSHCommand}}", cmd)
	return r.Replace(htmlPage)
}

func main() {
	logger, closer, err := config.Logger("web", os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid log settings:", err)
		os.Exit(1)
	}
	defer closer.Close()

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_DISPLAY_PORT", "")

	page := renderPage(sshHost, sshPort)
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
