package httputil

import "github.com/gin-gonic/gin"

// IHttpHandler is one mounted route tree. Root names the path segment under
// the versioned API; SetRoutes receives the public, authenticated and admin
// groups already scoped to that segment.
type IHttpHandler interface {
	Root() string
	SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup)
}
