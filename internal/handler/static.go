package handler

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Brownie44l1/shipping-http/internal/request"
	"github.com/Brownie44l1/shipping-http/internal/response"
)

const (
	IndexPage  = "index.html"
	HealthPage = "health.html"
)

// Static serves files from a document root.
//
//	/        -> index.html
//	/health  -> health.html
//	/<name>  -> <name>
//
// A file that cannot be read gives a 404 with no body and the default
// Content-Type header.
type Static struct {
	Files FileReader
}

func NewStatic(files FileReader) *Static {
	return &Static{Files: files}
}

func (s *Static) Handle(req *request.Request) *response.Response {
	name := fileName(req.Path())

	data, ok := s.Files.ReadFile(name)
	if !ok {
		return response.New(response.StatusNotFound, nil, nil)
	}

	return response.Bytes(response.StatusOK, ContentType(name), data)
}

func fileName(target string) string {
	p := strings.TrimPrefix(stripQuery(target), "/")
	switch p {
	case "":
		return IndexPage
	case "health":
		return HealthPage
	default:
		return p
	}
}

// ContentType picks the Content-Type from the file extension.
func ContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html":
		return "text/html"
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	default:
		return "text/plain"
	}
}

// DirFiles reads files below Root. Names are cleaned as rooted slash
// paths first, so ".." can never climb out of Root.
type DirFiles struct {
	Root string
}

func (d DirFiles) ReadFile(name string) ([]byte, bool) {
	clean := path.Clean("/" + name)
	full := filepath.Join(d.Root, filepath.FromSlash(clean))

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return nil, false
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, false
	}
	return data, true
}
