package handler

import (
	"github.com/Brownie44l1/shipping-http/internal/request"
	"github.com/Brownie44l1/shipping-http/internal/response"
)

const NotFoundPage = `<!DOCTYPE html>
<html>
<head><title>Not Found</title></head>
<body>
	<h1>404</h1>
	<p>The page you asked for does not exist.</p>
</body>
</html>`

// NotFound ignores the request and always answers 404 with NotFoundPage.
type NotFound struct{}

func (NotFound) Handle(*request.Request) *response.Response {
	return response.New(response.StatusNotFound, nil, []byte(NotFoundPage))
}
