package utils

import (
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// E if the last arg is error, panic it
func E(args ...interface{}) []interface{} {
	err, ok := args[len(args)-1].(error)
	if ok {
		panic(err)
	}
	return args
}

// Mkdir makes dir recursively
func Mkdir(path string) error {
	return os.MkdirAll(path, 0775)
}

// OutputFile auto creates file if not exists
func OutputFile(p string, data []byte) error {
	_ = Mkdir(filepath.Dir(p))
	return os.WriteFile(p, data, 0664)
}

// ReadString reads file as string
func ReadString(p string) (string, error) {
	bin, err := os.ReadFile(p)
	return string(bin), err
}

// Serve a gin engine on the host, if host is empty a random local port will be used.
// It returns the url of the server, the engine to add routes, and the function to close the server.
func Serve(host string) (string, *gin.Engine, func()) {
	if host == "" {
		host = "127.0.0.1:0"
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	srv := &http.Server{Handler: engine}

	l, err := net.Listen("tcp", host)
	E(err)

	go func() { _ = srv.Serve(l) }()

	url := "http://" + l.Addr().String()

	return url, engine, func() {
		E(srv.Close())
	}
}

// ServeDir serves the files under dir, see Serve for the return values
func ServeDir(host, dir string) (string, func()) {
	u, engine, close := Serve(host)
	engine.NoRoute(gin.WrapH(http.FileServer(http.Dir(dir))))
	return u, close
}

// HTML responds the body as a html page
func HTML(body string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
	}
}
